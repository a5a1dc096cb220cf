package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// auditLogsHandler returns one page of the guild's audit log, optionally
// filtered by action type. Details are projected per action type.
func (api *API) auditLogsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	page := pageFromQuery(c)

	entries, total, err := api.Logs.AuditPage(c.Request.Context(), guildID,
		models.ActionType(c.Query("type")), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		items = append(items, gin.H{
			"id":         e.ID,
			"guildId":    e.GuildID,
			"actionType": e.ActionType,
			"userId":     e.UserID,
			"targetId":   e.TargetID,
			"reason":     e.Reason,
			"details":    e.FormatDetails(),
			"createdAt":  e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, pageResponse("logs", items, total, page))
}

// spamLogsHandler returns one page of the guild's spam log, optionally
// filtered by detection type
func (api *API) spamLogsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	page := pageFromQuery(c)

	entries, total, err := api.Logs.SpamPage(c.Request.Context(), guildID,
		models.DetectionType(c.Query("type")), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		items = append(items, gin.H{
			"id":             e.ID,
			"guildId":        e.GuildID,
			"userId":         e.UserID,
			"channelId":      e.ChannelID,
			"messageContent": e.MessageContent,
			"detectionType":  e.DetectionType,
			"actionTaken":    e.ActionTaken,
			"details":        e.FormatDetails(),
			"createdAt":      e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, pageResponse("logs", items, total, page))
}

// clearLogsHandler deletes the guild's log entries. The type query selects
// "audit", "spam" or "all".
func (api *API) clearLogsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	kind := c.DefaultQuery("type", "all")
	ctx := c.Request.Context()

	auditDeleted, spamDeleted, err := api.Logs.Clear(ctx, guildID, kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionSettingUpdate,
		UserID:     auth.UserID(c),
		Details: map[string]any{
			"setting":  "logs",
			"oldValue": kind,
			"newValue": "cleared",
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"auditDeleted": auditDeleted,
		"spamDeleted":  spamDeleted,
	})
}

// exportLogsHandler returns a guild's logs for a date range as a JSON
// attachment
func (api *API) exportLogsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	ctx := c.Request.Context()

	now := time.Now().UTC()
	from := now.Add(-models.AuditLogTTL)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid from date %q", v)})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid to date %q", v)})
			return
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	audit, err := api.Logs.ExportAudit(ctx, guildID, from, to)
	if err != nil {
		serviceError(c, err)
		return
	}
	spam, err := api.Logs.ExportSpam(ctx, guildID, from, to)
	if err != nil {
		serviceError(c, err)
		return
	}

	payload, err := json.Marshal(gin.H{
		"guildId":    guildID,
		"from":       from,
		"to":         to,
		"exportedAt": now,
		"auditLogs":  audit,
		"spamLogs":   spam,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode export"})
		return
	}

	filename := fmt.Sprintf("logs-%s-%s.json", guildID, now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", payload)
}
