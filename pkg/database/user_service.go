package database

import (
	"context"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// UserService manages user documents (dashboard accounts and guild members)
type UserService struct {
	users *Collection[models.User]
}

// NewUserService creates a UserService
func NewUserService(db *Database) *UserService {
	return &UserService{
		users: NewCollection[models.User](db, CollUsers),
	}
}

// FindByDiscordID returns the user document, or ErrNotFound
func (s *UserService) FindByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	doc, err := s.users.FindOne(ctx, bson.M{"discordId": discordID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// FindInGuild returns the user document when the user is a member of the
// guild, or ErrNotFound
func (s *UserService) FindInGuild(ctx context.Context, guildID, discordID string) (*models.User, error) {
	doc, err := s.users.FindOne(ctx, bson.M{"discordId": discordID, "guilds": guildID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// SearchPage returns one page of a guild's members, optionally filtered by a
// case-insensitive username match or a Discord ID prefix, sorted by username
func (s *UserService) SearchPage(ctx context.Context, guildID, search string, page Pagination) ([]models.User, int64, error) {
	page = page.Normalize()

	filter := bson.M{"guilds": guildID}
	if search != "" {
		filter["$or"] = []bson.M{
			{"username": bson.M{"$regex": search, "$options": "i"}},
			{"discordId": bson.M{"$regex": "^" + search}},
		}
	}

	sort := bson.D{{Key: "username", Value: 1}}
	return s.users.FindPage(ctx, filter, sort, page.Skip(), page.Limit)
}

// UpsertFromLogin records a dashboard login, creating the user when absent
func (s *UserService) UpsertFromLogin(ctx context.Context, discordID, username, email, avatar string) (*models.User, error) {
	now := time.Now().UTC()
	return s.users.Upsert(ctx, bson.M{"discordId": discordID}, bson.M{
		"discordId":  discordID,
		"username":   username,
		"email":      email,
		"avatar":     avatar,
		"lastLogin":  now,
		"lastActive": now,
		"updatedAt":  now,
	})
}

// SetWarningState persists the warning counters and per-guild settings of a
// user after a model-level AddWarning/ClearWarnings
func (s *UserService) SetWarningState(ctx context.Context, u *models.User) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"discordId": u.DiscordID}, bson.M{
		"$set": bson.M{
			"warnings":      u.Warnings,
			"warningDates":  u.WarningDates,
			"guildSettings": u.GuildSettings,
			"updatedAt":     time.Now().UTC(),
		},
	})
	return err
}

// Ban flips the local ban flag and records the reason and timestamp
func (s *UserService) Ban(ctx context.Context, discordID, reason string) error {
	now := time.Now().UTC()
	_, err := s.users.UpdateOne(ctx, bson.M{"discordId": discordID}, bson.M{
		"$set": bson.M{
			"isBanned":  true,
			"banReason": reason,
			"bannedAt":  now,
			"updatedAt": now,
		},
	})
	return err
}

// Unban clears the local ban flag and its metadata
func (s *UserService) Unban(ctx context.Context, discordID string) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"discordId": discordID}, bson.M{
		"$set":   bson.M{"isBanned": false, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"banReason": "", "bannedAt": ""},
	})
	return err
}

// TouchActivity bumps lastActive for a user
func (s *UserService) TouchActivity(ctx context.Context, discordID string) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"discordId": discordID}, bson.M{
		"$set": bson.M{"lastActive": time.Now().UTC()},
	})
	return err
}
