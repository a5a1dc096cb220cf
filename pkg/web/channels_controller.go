package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// listChannelsHandler refreshes the channel mirror from Discord and returns
// one page of it. A sync failure degrades to serving the stored mirror.
func (api *API) listChannelsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	page := pageFromQuery(c)
	ctx := c.Request.Context()

	remote, err := api.Adapter.GetGuildChannels(ctx, guildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Channel sync for %s failed, serving mirror: %v", guildID, err), "Channels")
	} else if err := api.Channels.SyncFromDiscord(ctx, guildID, remote); err != nil {
		serviceError(c, err)
		return
	}

	channels, total, err := api.Channels.Page(ctx, guildID, models.ChannelType(c.Query("type")), page)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse("channels", channels, total, page))
}

// channelCategoriesHandler returns the guild's category channels
func (api *API) channelCategoriesHandler(c *gin.Context) {
	categories, err := api.Channels.Categories(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type channelPayload struct {
	Name             string `json:"name" binding:"required"`
	Type             string `json:"type"`
	Topic            string `json:"topic"`
	NSFW             bool   `json:"nsfw"`
	Bitrate          int    `json:"bitrate"`
	UserLimit        int    `json:"userLimit"`
	ParentID         string `json:"parentId"`
	Position         int    `json:"position"`
	RateLimitPerUser int    `json:"rateLimitPerUser"`
	Reason           string `json:"reason"`
}

func (p channelPayload) params() discord.ChannelParams {
	return discord.ChannelParams{
		Name:             p.Name,
		Type:             p.Type,
		Topic:            p.Topic,
		NSFW:             p.NSFW,
		Bitrate:          p.Bitrate,
		UserLimit:        p.UserLimit,
		ParentID:         p.ParentID,
		Position:         p.Position,
		RateLimitPerUser: p.RateLimitPerUser,
		Reason:           p.Reason,
	}
}

// createChannelHandler creates the channel on Discord first, then mirrors
// the canonical object locally and writes the audit entry
func (api *API) createChannelHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	ctx := c.Request.Context()

	var payload channelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A channel name is required"})
		return
	}

	remote, err := api.Adapter.CreateGuildChannel(ctx, guildID, payload.params())
	if err != nil {
		adapterError(c, "Failed to create channel", err)
		return
	}

	channel, err := api.Channels.UpsertFromRemote(ctx, guildID, *remote)
	if err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionChannelCreate,
		UserID:     auth.UserID(c),
		TargetID:   remote.ID,
		Details:    map[string]any{"name": remote.Name, "type": remote.Type, "category": remote.ParentID},
	})

	c.JSON(http.StatusCreated, gin.H{"channel": channel})
}

// updateChannelHandler edits the channel on Discord first, then refreshes
// the mirror
func (api *API) updateChannelHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	channelID := c.Param("channelId")
	ctx := c.Request.Context()

	var payload channelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A channel name is required"})
		return
	}

	remote, err := api.Adapter.UpdateGuildChannel(ctx, guildID, channelID, payload.params())
	if err != nil {
		adapterError(c, "Failed to update channel", err)
		return
	}

	channel, err := api.Channels.UpsertFromRemote(ctx, guildID, *remote)
	if err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionChannelUpdate,
		UserID:     auth.UserID(c),
		TargetID:   channelID,
		Details:    map[string]any{"name": remote.Name, "type": remote.Type, "category": remote.ParentID},
	})

	c.JSON(http.StatusOK, gin.H{"channel": channel})
}

// deleteChannelHandler deletes the channel on Discord first, then drops the
// mirror document
func (api *API) deleteChannelHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	channelID := c.Param("channelId")
	ctx := c.Request.Context()

	reason := c.Query("reason")
	if err := api.Adapter.DeleteGuildChannel(ctx, guildID, channelID, reason); err != nil {
		adapterError(c, "Failed to delete channel", err)
		return
	}

	if err := api.Channels.Delete(ctx, guildID, channelID); err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionChannelDelete,
		UserID:     auth.UserID(c),
		TargetID:   channelID,
		Reason:     reason,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type permissionsPayload struct {
	RoleID string `json:"roleId" binding:"required"`
	Allow  string `json:"allow"`
	Deny   string `json:"deny"`
}

// channelPermissionsHandler sets a role overwrite on Discord first, then on
// the mirror document
func (api *API) channelPermissionsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	channelID := c.Param("channelId")
	ctx := c.Request.Context()

	var payload permissionsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A roleId is required"})
		return
	}

	allow, err := strconv.ParseInt(defaultZero(payload.Allow), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid allow bitset %q", payload.Allow)})
		return
	}
	deny, err := strconv.ParseInt(defaultZero(payload.Deny), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid deny bitset %q", payload.Deny)})
		return
	}

	if err := api.Adapter.UpdateChannelPermissions(ctx, guildID, channelID, payload.RoleID, allow, deny); err != nil {
		adapterError(c, "Failed to update channel permissions", err)
		return
	}

	channel, err := api.Channels.SetPermission(ctx, guildID, channelID, payload.RoleID,
		strconv.FormatInt(allow, 10), strconv.FormatInt(deny, 10))
	if err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionChannelPerms,
		UserID:     auth.UserID(c),
		TargetID:   channelID,
		Details:    map[string]any{"roleId": payload.RoleID, "allow": allow, "deny": deny},
	})

	c.JSON(http.StatusOK, gin.H{"channel": channel})
}

func defaultZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
