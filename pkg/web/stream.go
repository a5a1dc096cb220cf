package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the token check, not the Origin header
	CheckOrigin: func(r *http.Request) bool { return true },
}

const streamPollInterval = 3 * time.Second

// streamLogsHandler upgrades to a websocket and pushes newly created audit
// entries for the guild. The session token arrives as a query parameter.
func (api *API) streamLogsHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}
	if _, err := api.JWT.Validate(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	guildID := c.Param("guildId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Websocket upgrade failed: %v", err), "Stream")
		return
	}
	defer func() { _ = conn.Close() }()

	// Drain client frames so close messages are noticed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	last := time.Now().UTC()
	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			entries, err := api.Logs.AuditAfter(c.Request.Context(), guildID, last)
			if err != nil {
				logger.Error(fmt.Sprintf("Audit stream query failed: %v", err), "Stream")
				continue
			}

			for i := range entries {
				if err := conn.WriteJSON(&entries[i]); err != nil {
					return
				}
				if entries[i].CreatedAt.After(last) {
					last = entries[i].CreatedAt
				}
			}
		}
	}
}
