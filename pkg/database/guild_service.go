package database

import (
	"context"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// GuildService manages the guild documents the dashboard reads
type GuildService struct {
	guilds *Collection[models.Guild]
}

// NewGuildService creates a GuildService
func NewGuildService(db *Database) *GuildService {
	return &GuildService{
		guilds: NewCollection[models.Guild](db, CollGuilds),
	}
}

// FindByGuildID returns the guild document, or ErrNotFound
func (s *GuildService) FindByGuildID(ctx context.Context, guildID string) (*models.Guild, error) {
	doc, err := s.guilds.FindOne(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// ListForUser returns the guild documents whose guildId is in ids
func (s *GuildService) ListForUser(ctx context.Context, ids []string) ([]models.Guild, error) {
	if len(ids) == 0 {
		return []models.Guild{}, nil
	}
	guilds, err := s.guilds.Find(ctx, bson.M{"guildId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	if guilds == nil {
		guilds = []models.Guild{}
	}
	return guilds, nil
}

// UpsertInfo writes the identity and count fields of a guild, creating the
// document when absent. Stats and dailyStats are never touched here.
func (s *GuildService) UpsertInfo(ctx context.Context, g *models.Guild) (*models.Guild, error) {
	return s.guilds.Upsert(ctx, bson.M{"guildId": g.GuildID}, bson.M{
		"guildId":      g.GuildID,
		"name":         g.Name,
		"icon":         g.Icon,
		"ownerId":      g.OwnerID,
		"isPremium":    g.IsPremium,
		"memberCount":  g.MemberCount,
		"botCount":     g.BotCount,
		"channelCount": g.ChannelCount,
		"roleCount":    g.RoleCount,
		"region":       g.Region,
		"features":     g.Features,
		"updatedAt":    time.Now().UTC(),
	})
}

// UpdateStats increments the cumulative counters by the given deltas
func (s *GuildService) UpdateStats(ctx context.Context, guildID string, delta models.GuildStats) error {
	inc := bson.M{}
	if delta.Messages != 0 {
		inc["stats.messages"] = delta.Messages
	}
	if delta.Commands != 0 {
		inc["stats.commands"] = delta.Commands
	}
	if delta.ModerationActions != 0 {
		inc["stats.moderationActions"] = delta.ModerationActions
	}
	if delta.SpamDetections != 0 {
		inc["stats.spamDetections"] = delta.SpamDetections
	}
	if delta.RaidAttempts != 0 {
		inc["stats.raidAttempts"] = delta.RaidAttempts
	}
	if len(inc) == 0 {
		return nil
	}

	_, err := s.guilds.UpdateOne(ctx, bson.M{"guildId": guildID}, bson.M{
		"$inc": inc,
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

// AddDailyStats merges a daily activity entry into the guild's dailyStats
// series (one entry per calendar day, 30-day window) and persists the result
func (s *GuildService) AddDailyStats(ctx context.Context, guildID string, entry models.DailyStat) error {
	g, err := s.FindByGuildID(ctx, guildID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	g.ApplyDailyStats(now, entry)

	_, err = s.guilds.UpdateOne(ctx, bson.M{"guildId": guildID}, bson.M{
		"$set": bson.M{
			"dailyStats": g.DailyStats,
			"updatedAt":  now,
		},
	})
	return err
}
