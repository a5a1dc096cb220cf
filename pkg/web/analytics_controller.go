package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// overviewHandler returns the dashboard summary for a guild
func (api *API) overviewHandler(c *gin.Context) {
	overview, err := api.Analytics.Overview(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// activityHandler returns the guild's daily activity series
func (api *API) activityHandler(c *gin.Context) {
	days := daysFromQuery(c, 7)

	activity, err := api.Analytics.Activity(c.Request.Context(), c.Param("guildId"), days)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity, "days": days})
}

// commandStatsHandler returns the guild's most-used commands
func (api *API) commandStatsHandler(c *gin.Context) {
	days := daysFromQuery(c, 7)

	stats, err := api.Analytics.CommandStats(c.Request.Context(), c.Param("guildId"), days)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commands": stats, "days": days})
}

// moderationStatsHandler returns the guild's moderation action breakdown
func (api *API) moderationStatsHandler(c *gin.Context) {
	days := daysFromQuery(c, 7)

	stats, err := api.Analytics.ModerationStats(c.Request.Context(), c.Param("guildId"), days)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moderation": stats, "days": days})
}

// userStatsHandler returns the guild's member movement summary
func (api *API) userStatsHandler(c *gin.Context) {
	days := daysFromQuery(c, 7)

	stats, err := api.Analytics.UserStats(c.Request.Context(), c.Param("guildId"), days)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": stats, "days": days})
}
