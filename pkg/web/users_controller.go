package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/database"
	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/events"
	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// listUsersHandler returns one page of the guild's members, optionally
// filtered by a search term
func (api *API) listUsersHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	page := pageFromQuery(c)

	users, total, err := api.Users.SearchPage(c.Request.Context(), guildID, c.Query("search"), page)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse("users", users, total, page))
}

// userDetailsHandler returns a member plus their warning history
func (api *API) userDetailsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	userID := c.Param("userId")

	user, err := api.Users.FindInGuild(c.Request.Context(), guildID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	warnings, err := api.Warnings.ListForUser(c.Request.Context(), guildID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "warnings": warnings})
}

type warnRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// warningExpiry derives the expiry timestamp from the guild's warning
// policy, falling back to the default policy when none is stored
func (api *API) warningExpiry(c *gin.Context, guildID string, now time.Time) *time.Time {
	expireAfter := models.DefaultSettings(guildID).Warnings.ExpireAfter

	settings, err := api.Settings.Get(c.Request.Context(), guildID)
	if err == nil {
		expireAfter = settings.Warnings.ExpireAfter
	} else if !errors.Is(err, database.ErrNotFound) {
		logger.Warn("Failed to load warning policy, using defaults: "+err.Error(), "Moderation")
	}

	if expireAfter <= 0 {
		return nil
	}
	expiry := now.Add(time.Duration(expireAfter) * 24 * time.Hour)
	return &expiry
}

// warnUserHandler issues a warning. Write order: warning document, then
// user counters, then audit entry. The writes are not transactional; a
// failure partway leaves the earlier writes in place.
func (api *API) warnUserHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	userID := c.Param("userId")
	moderatorID := auth.UserID(c)
	ctx := c.Request.Context()

	var req warnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required"})
		return
	}

	user, err := api.Users.FindInGuild(ctx, guildID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	now := time.Now().UTC()
	warning := &models.Warning{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      req.Reason,
		ExpiresAt:   api.warningExpiry(c, guildID, now),
		CreatedAt:   now,
	}
	if err := api.Warnings.Create(ctx, warning); err != nil {
		serviceError(c, err)
		return
	}

	user.AddWarning(guildID, now)
	if err := api.Users.SetWarningState(ctx, user); err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionWarn,
		UserID:     moderatorID,
		TargetID:   userID,
		Reason:     req.Reason,
		Details:    map[string]any{"previousWarnings": user.Warnings - 1},
	})

	api.Events.PublishModeration(events.ModerationEvent{
		GuildID:     guildID,
		Action:      string(models.ActionWarn),
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      req.Reason,
	})

	c.JSON(http.StatusOK, gin.H{"warning": warning, "warnings": user.Warnings})
}

type banRequest struct {
	Reason            string `json:"reason" binding:"required"`
	DeleteMessageDays int    `json:"deleteMessageDays"`
}

// banUserHandler bans a member. Write order: local ban flag, then the
// Discord ban, then the audit entry. A Discord failure after the flag write
// leaves the member flagged locally but not banned remotely.
func (api *API) banUserHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	userID := c.Param("userId")
	moderatorID := auth.UserID(c)
	ctx := c.Request.Context()

	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required"})
		return
	}

	if _, err := api.Users.FindInGuild(ctx, guildID, userID); err != nil {
		serviceError(c, err)
		return
	}

	if err := api.Users.Ban(ctx, userID, req.Reason); err != nil {
		serviceError(c, err)
		return
	}

	err := api.Adapter.BanGuildMember(ctx, guildID, userID, discord.BanParams{
		Reason:            req.Reason,
		DeleteMessageDays: req.DeleteMessageDays,
	})
	if err != nil {
		adapterError(c, "Failed to ban user", err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionBan,
		UserID:     moderatorID,
		TargetID:   userID,
		Reason:     req.Reason,
	})

	api.Events.PublishModeration(events.ModerationEvent{
		GuildID:     guildID,
		Action:      string(models.ActionBan),
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      req.Reason,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// unbanUserHandler lifts a ban. Write order mirrors banUserHandler: the
// local flag is cleared first, then the Discord unban, then the audit
// entry. A Discord failure after the flag write leaves the member unbanned
// locally but still banned remotely.
func (api *API) unbanUserHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	userID := c.Param("userId")
	moderatorID := auth.UserID(c)
	ctx := c.Request.Context()

	if err := api.Users.Unban(ctx, userID); err != nil {
		serviceError(c, err)
		return
	}

	if err := api.Adapter.UnbanGuildMember(ctx, guildID, userID); err != nil {
		adapterError(c, "Failed to unban user", err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionUnban,
		UserID:     moderatorID,
		TargetID:   userID,
	})

	api.Events.PublishModeration(events.ModerationEvent{
		GuildID:     guildID,
		Action:      string(models.ActionUnban),
		UserID:      userID,
		ModeratorID: moderatorID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type clearWarningsRequest struct {
	Reason string `json:"reason"`
}

// clearWarningsHandler soft-deletes a member's active warnings and resets
// their counters
func (api *API) clearWarningsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	userID := c.Param("userId")
	moderatorID := auth.UserID(c)
	ctx := c.Request.Context()

	var req clearWarningsRequest
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "cleared by moderator"
	}

	user, err := api.Users.FindInGuild(ctx, guildID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	cleared, err := api.Warnings.DeactivateAll(ctx, guildID, userID, moderatorID, req.Reason)
	if err != nil {
		serviceError(c, err)
		return
	}

	user.ClearWarnings(guildID)
	if err := api.Users.SetWarningState(ctx, user); err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionClearWarnings,
		UserID:     moderatorID,
		TargetID:   userID,
		Reason:     req.Reason,
		Details:    map[string]any{"cleared": cleared},
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "cleared": cleared})
}
