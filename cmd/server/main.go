// Package main is the entry point for the ShardDash backend.
// It initializes all systems and starts the dashboard API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/auth"
	"github.com/ShardBotStudio/ShardDashGo/pkg/config"
	"github.com/ShardBotStudio/ShardDashGo/pkg/database"
	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/errors"
	"github.com/ShardBotStudio/ShardDashGo/pkg/events"
	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/ShardBotStudio/ShardDashGo/pkg/web"
)

const warningSweepInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting ShardDash...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	errors.Init(cfg.ErrorWebhook, func() {
		if db := database.Get(); db != nil {
			_ = db.Disconnect()
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		os.Exit(1)
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			logger.Error(fmt.Sprintf("Error disconnecting database: %v", err), "Main")
		}
	}()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		logger.Critical(fmt.Sprintf("Error creating database indexes: %v", err), "Main")
		cancelIndexes()
		os.Exit(1)
	}
	cancelIndexes()

	// Initialize Discord sync adapter
	adapter, err := discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Initialize event publisher
	publisher := events.Init(cfg.MQTTHost, cfg.MQTTPort, cfg.MQTTUser, cfg.MQTTPassword)
	defer publisher.Destroy()

	// Initialize auth
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, "sharddash")
	oauth := auth.NewOAuthFlow(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI)

	// Initialize web server
	server := web.Init()
	api := web.NewAPI(db, adapter, jwtManager, oauth, publisher)
	web.SetupAPIRoutes(server, api)
	server.StartAsync(cfg.Port)

	// Background sweeper deactivating expired warnings
	stopSweeper := make(chan struct{})
	go runWarningSweeper(database.NewWarningService(db), stopSweeper)
	defer close(stopSweeper)

	logger.Success("ShardDash started successfully!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down ShardDash...", "Main")
}

// runWarningSweeper periodically soft-deletes warnings past their expiry
func runWarningSweeper(warnings *database.WarningService, stop <-chan struct{}) {
	defer errors.RecoverMiddleware()()

	ticker := time.NewTicker(warningSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			count, err := warnings.DeleteExpired(ctx, time.Now().UTC())
			cancel()

			if err != nil {
				logger.Error(fmt.Sprintf("Warning sweep failed: %v", err), "Sweeper")
				continue
			}
			if count > 0 {
				logger.Info(fmt.Sprintf("Deactivated %d expired warnings", count), "Sweeper")
			}
		}
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
