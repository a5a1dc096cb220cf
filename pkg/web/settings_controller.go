package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// getSettingsHandler returns the guild's stored settings. A guild that has
// never saved settings answers 404; the frontend renders defaults itself.
func (api *API) getSettingsHandler(c *gin.Context) {
	guildID := c.Param("guildId")

	settings, err := api.Settings.Get(c.Request.Context(), guildID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// updateSettingsHandler applies a partial settings patch
func (api *API) updateSettingsHandler(c *gin.Context) {
	guildID := c.Param("guildId")

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	settings, err := api.Settings.Update(c.Request.Context(), guildID, bson.M(patch))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// resetSettingsHandler restores the guild's settings to the defaults
func (api *API) resetSettingsHandler(c *gin.Context) {
	guildID := c.Param("guildId")

	settings, err := api.Settings.Reset(c.Request.Context(), guildID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// settingsRolesHandler returns the live role list for the settings pickers.
// Unknown guilds answer 404 before any Discord call is made.
func (api *API) settingsRolesHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	ctx := c.Request.Context()

	if _, err := api.Guilds.FindByGuildID(ctx, guildID); err != nil {
		serviceError(c, err)
		return
	}

	roles, err := api.Adapter.GetGuildRoles(ctx, guildID)
	if err != nil {
		adapterError(c, "Failed to load roles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// settingsChannelsHandler returns the live channel list for the settings
// pickers. Unknown guilds answer 404 before any Discord call is made.
func (api *API) settingsChannelsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	ctx := c.Request.Context()

	if _, err := api.Guilds.FindByGuildID(ctx, guildID); err != nil {
		serviceError(c, err)
		return
	}

	channels, err := api.Adapter.GetGuildChannels(ctx, guildID)
	if err != nil {
		adapterError(c, "Failed to load channels", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}
