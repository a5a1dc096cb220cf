// Package web - API route registration.
package web

import (
	"net/http"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/config"
	"github.com/ShardBotStudio/ShardDashGo/pkg/database"
	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/events"
	"github.com/gin-gonic/gin"
)

// API bundles the services the route handlers operate on
type API struct {
	DB        *database.Database
	Settings  *database.SettingsService
	Guilds    *database.GuildService
	Users     *database.UserService
	Warnings  *database.WarningService
	Logs      *database.LogService
	Roles     *database.RoleService
	Channels  *database.ChannelService
	Analytics *database.AnalyticsService
	Adapter   discord.SyncAdapter
	JWT       *auth.JWTManager
	OAuth     *auth.OAuthFlow
	Events    *events.Publisher
}

// NewAPI wires the services over one database connection
func NewAPI(db *database.Database, adapter discord.SyncAdapter, jwtManager *auth.JWTManager, oauth *auth.OAuthFlow, publisher *events.Publisher) *API {
	return &API{
		DB:        db,
		Settings:  database.NewSettingsService(db),
		Guilds:    database.NewGuildService(db),
		Users:     database.NewUserService(db),
		Warnings:  database.NewWarningService(db),
		Logs:      database.NewLogService(db),
		Roles:     database.NewRoleService(db),
		Channels:  database.NewChannelService(db),
		Analytics: database.NewAnalyticsService(db),
		Adapter:   adapter,
		JWT:       jwtManager,
		OAuth:     oauth,
		Events:    publisher,
	}
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, api *API) {
	root := s.Group("/api")
	{
		root.GET("/status", api.statusHandler)
		root.GET("/health", healthHandler)
	}

	authRoutes := root.Group("/auth")
	{
		authRoutes.GET("/url", api.authURLHandler)
		authRoutes.POST("/login", api.loginHandler)
		authRoutes.POST("/logout", api.logoutHandler)
		authRoutes.GET("/me", auth.Middleware(api.JWT), api.meHandler)
	}

	// The websocket stream authenticates via query token because browsers
	// cannot set headers on websocket upgrades.
	root.GET("/guilds/:guildId/logs/stream", api.streamLogsHandler)

	guilds := root.Group("/guilds/:guildId", auth.Middleware(api.JWT))
	{
		guilds.GET("/settings", api.getSettingsHandler)
		guilds.PUT("/settings", api.updateSettingsHandler)
		guilds.POST("/settings/reset", api.resetSettingsHandler)
		guilds.GET("/settings/roles", api.settingsRolesHandler)
		guilds.GET("/settings/channels", api.settingsChannelsHandler)

		guilds.GET("/users", api.listUsersHandler)
		guilds.GET("/users/:userId", api.userDetailsHandler)
		guilds.POST("/users/:userId/warn", api.warnUserHandler)
		guilds.POST("/users/:userId/ban", api.banUserHandler)
		guilds.POST("/users/:userId/unban", api.unbanUserHandler)
		guilds.POST("/users/:userId/clear-warnings", api.clearWarningsHandler)

		guilds.GET("/roles", api.listRolesHandler)
		guilds.POST("/roles", api.createRoleHandler)
		guilds.PATCH("/roles/:roleId", api.updateRoleHandler)
		guilds.DELETE("/roles/:roleId", api.deleteRoleHandler)
		guilds.GET("/roles/:roleId/members", api.roleMembersHandler)

		guilds.GET("/channels", api.listChannelsHandler)
		guilds.GET("/channels/categories", api.channelCategoriesHandler)
		guilds.POST("/channels", api.createChannelHandler)
		guilds.PATCH("/channels/:channelId", api.updateChannelHandler)
		guilds.DELETE("/channels/:channelId", api.deleteChannelHandler)
		guilds.PUT("/channels/:channelId/permissions", api.channelPermissionsHandler)

		guilds.GET("/logs/audit", api.auditLogsHandler)
		guilds.GET("/logs/spam", api.spamLogsHandler)
		guilds.DELETE("/logs", api.clearLogsHandler)
		guilds.GET("/logs/export", api.exportLogsHandler)

		guilds.GET("/analytics/overview", api.overviewHandler)
		guilds.GET("/analytics/activity", api.activityHandler)
		guilds.GET("/analytics/commands", api.commandStatsHandler)
		guilds.GET("/analytics/moderation", api.moderationStatsHandler)
		guilds.GET("/analytics/users", api.userStatsHandler)
	}
}

// statusHandler returns the API and database status
func (api *API) statusHandler(c *gin.Context) {
	dbStatus, dbOnline := api.DB.GetStatus()

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": config.Version,
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"events": gin.H{
			"isConnected": api.Events.Enabled(),
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ShardDash is running",
	})
}
