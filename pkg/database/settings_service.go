package database

import (
	"context"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SettingsService manages per-guild moderation configuration. Absent
// settings are never auto-created on read; callers render defaults from
// models.DefaultSettings instead.
type SettingsService struct {
	settings *Collection[models.Settings]
	guilds   *Collection[models.Guild]
}

// NewSettingsService creates a SettingsService
func NewSettingsService(db *Database) *SettingsService {
	return &SettingsService{
		settings: NewCollection[models.Settings](db, CollSettings),
		guilds:   NewCollection[models.Guild](db, CollGuilds),
	}
}

// Get returns the stored settings for a guild, or ErrNotFound
func (s *SettingsService) Get(ctx context.Context, guildID string) (*models.Settings, error) {
	doc, err := s.settings.FindOne(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// protected fields a settings patch may never touch
var settingsImmutable = []string{"_id", "guildId", "createdAt"}

// Update applies a partial settings patch by upsert and refreshes the
// denormalized settings subset on the guild document. The two writes run
// sequentially without a transaction; a guild-mirror failure after a
// successful settings write leaves the mirror stale until the next update.
func (s *SettingsService) Update(ctx context.Context, guildID string, patch bson.M) (*models.Settings, error) {
	for _, field := range settingsImmutable {
		delete(patch, field)
	}
	patch["guildId"] = guildID
	patch["updatedAt"] = time.Now().UTC()

	updated, err := s.settings.Upsert(ctx, bson.M{"guildId": guildID}, patch)
	if err != nil {
		return nil, err
	}

	if err := s.mirrorToGuild(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Reset deletes the stored settings and writes fresh defaults. Delete and
// insert are two separate operations.
func (s *SettingsService) Reset(ctx context.Context, guildID string) (*models.Settings, error) {
	if err := s.settings.DeleteOne(ctx, bson.M{"guildId": guildID}); err != nil {
		return nil, err
	}

	defaults := models.DefaultSettings(guildID)
	if err := s.settings.InsertOne(ctx, &defaults); err != nil {
		return nil, err
	}

	if err := s.mirrorToGuild(ctx, &defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}

func (s *SettingsService) mirrorToGuild(ctx context.Context, settings *models.Settings) error {
	mirror := models.GuildSettingsMirror{
		Prefix:           settings.Prefix,
		Language:         settings.Language,
		ModRoleID:        settings.ModRoleID,
		AdminRoleID:      settings.AdminRoleID,
		LogChannelID:     settings.LogChannelID,
		WelcomeChannelID: settings.WelcomeChannelID,
		WelcomeMessage:   settings.WelcomeMessage,
		LeaveMessage:     settings.LeaveMessage,
		SpamProtection:   &settings.SpamProtection,
		RaidProtection:   &settings.RaidProtection,
	}

	_, err := s.guilds.UpdateOne(ctx, bson.M{"guildId": settings.GuildID}, bson.M{
		"$set": bson.M{
			"settings":  mirror,
			"updatedAt": time.Now().UTC(),
		},
	})
	return err
}
