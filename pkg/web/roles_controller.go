package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// listRolesHandler refreshes the role mirror from Discord and returns one
// page of it. A sync failure degrades to serving the stored mirror.
func (api *API) listRolesHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	page := pageFromQuery(c)
	ctx := c.Request.Context()

	remote, err := api.Adapter.GetGuildRoles(ctx, guildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Role sync for %s failed, serving mirror: %v", guildID, err), "Roles")
	} else if err := api.Roles.SyncFromDiscord(ctx, guildID, remote); err != nil {
		serviceError(c, err)
		return
	}

	roles, total, err := api.Roles.Page(ctx, guildID, page)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse("roles", roles, total, page))
}

type rolePayload struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color"`
	Hoist       bool   `json:"hoist"`
	Mentionable bool   `json:"mentionable"`
	Permissions string `json:"permissions"`
	Reason      string `json:"reason"`
}

func (p rolePayload) params() (discord.RoleParams, error) {
	params := discord.RoleParams{
		Name:        p.Name,
		Hoist:       p.Hoist,
		Mentionable: p.Mentionable,
		Reason:      p.Reason,
	}

	if p.Color != "" {
		color, err := strconv.ParseInt(strings.TrimPrefix(p.Color, "#"), 16, 32)
		if err != nil {
			return params, fmt.Errorf("invalid color %q", p.Color)
		}
		params.Color = int(color)
	}
	if p.Permissions != "" {
		perms, err := strconv.ParseInt(p.Permissions, 10, 64)
		if err != nil {
			return params, fmt.Errorf("invalid permissions %q", p.Permissions)
		}
		params.Permissions = perms
	}
	return params, nil
}

// createRoleHandler creates the role on Discord first, then mirrors the
// canonical object locally and writes the audit entry
func (api *API) createRoleHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	ctx := c.Request.Context()

	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A role name is required"})
		return
	}

	params, err := payload.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	remote, err := api.Adapter.CreateGuildRole(ctx, guildID, params)
	if err != nil {
		adapterError(c, "Failed to create role", err)
		return
	}

	role, err := api.Roles.UpsertFromRemote(ctx, guildID, *remote)
	if err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionRoleCreate,
		UserID:     auth.UserID(c),
		TargetID:   remote.ID,
		Details:    map[string]any{"name": remote.Name, "color": remote.Color, "permissions": remote.Permissions},
	})

	c.JSON(http.StatusCreated, gin.H{"role": role})
}

// updateRoleHandler edits the role on Discord first, then refreshes the
// mirror
func (api *API) updateRoleHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	roleID := c.Param("roleId")
	ctx := c.Request.Context()

	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A role name is required"})
		return
	}

	params, err := payload.params()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	remote, err := api.Adapter.UpdateGuildRole(ctx, guildID, roleID, params)
	if err != nil {
		adapterError(c, "Failed to update role", err)
		return
	}

	role, err := api.Roles.UpsertFromRemote(ctx, guildID, *remote)
	if err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionRoleUpdate,
		UserID:     auth.UserID(c),
		TargetID:   roleID,
		Details:    map[string]any{"name": remote.Name, "color": remote.Color, "permissions": remote.Permissions},
	})

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// deleteRoleHandler deletes the role on Discord first, then drops the
// mirror document
func (api *API) deleteRoleHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	roleID := c.Param("roleId")
	ctx := c.Request.Context()

	if err := api.Adapter.DeleteGuildRole(ctx, guildID, roleID); err != nil {
		adapterError(c, "Failed to delete role", err)
		return
	}

	if err := api.Roles.Delete(ctx, guildID, roleID); err != nil {
		serviceError(c, err)
		return
	}

	api.audit(ctx, &models.AuditLog{
		GuildID:    guildID,
		ActionType: models.ActionRoleDelete,
		UserID:     auth.UserID(c),
		TargetID:   roleID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// roleMembersHandler returns one page of the members holding a role. The
// full holder list comes from Discord; pagination happens here.
func (api *API) roleMembersHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	roleID := c.Param("roleId")
	page := pageFromQuery(c)
	ctx := c.Request.Context()

	members, err := api.Adapter.GetGuildRoleMembers(ctx, guildID, roleID)
	if err != nil {
		adapterError(c, "Failed to load role members", err)
		return
	}

	if err := api.Roles.SetMemberCount(ctx, guildID, roleID, len(members)); err != nil {
		logger.Warn(fmt.Sprintf("Failed to record member count for role %s: %v", roleID, err), "Roles")
	}

	total := int64(len(members))
	start := page.Skip()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, pageResponse("members", members[start:end], total, page))
}
