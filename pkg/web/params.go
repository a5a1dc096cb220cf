package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/database"
	apperrors "github.com/ShardBotStudio/ShardDashGo/pkg/errors"
	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// pageFromQuery parses the page/limit query parameters (defaults 1/50)
func pageFromQuery(c *gin.Context) database.Pagination {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	return database.Pagination{Page: page, Limit: limit}.Normalize()
}

// daysFromQuery parses the days query parameter with a default window
func daysFromQuery(c *gin.Context, fallback int) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(fallback)))
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}

// pageResponse builds the standard paginated list payload
func pageResponse(key string, items any, total int64, p database.Pagination) gin.H {
	return gin.H{
		key:          items,
		"total":      total,
		"page":       p.Page,
		"totalPages": p.TotalPages(total),
	}
}

// serviceError maps a service failure onto the HTTP response. Unexpected
// store failures answer a generic body; the detail stays in the server log.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, database.ErrNotConnected):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
	default:
		logger.Error(fmt.Sprintf("Store operation failed: %v", err), "WebServer")
		if h := apperrors.Get(); h != nil {
			h.IncrementError()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// adapterError answers a failed Discord call with a generic message; the
// detail stays in the server log
func adapterError(c *gin.Context, message string, err error) {
	logger.Error(fmt.Sprintf("%s: %v", message, err), "Discord")
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// parseDate accepts RFC3339 timestamps and plain dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
