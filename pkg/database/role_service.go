package database

import (
	"context"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoleService manages the local role mirror. Discord is the source of truth
// for role state; SyncFromDiscord refreshes the mirror from what the sync
// adapter returned. Roles that vanished remotely are kept locally.
type RoleService struct {
	roles *Collection[models.Role]
}

// NewRoleService creates a RoleService
func NewRoleService(db *Database) *RoleService {
	return &RoleService{
		roles: NewCollection[models.Role](db, CollRoles),
	}
}

// FindByRoleID returns the mirrored role, or ErrNotFound
func (s *RoleService) FindByRoleID(ctx context.Context, guildID, roleID string) (*models.Role, error) {
	doc, err := s.roles.FindOne(ctx, bson.M{"guildId": guildID, "roleId": roleID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Page returns one page of a guild's roles, highest position first
func (s *RoleService) Page(ctx context.Context, guildID string, page Pagination) ([]models.Role, int64, error) {
	page = page.Normalize()
	sort := bson.D{{Key: "position", Value: -1}}
	return s.roles.FindPage(ctx, bson.M{"guildId": guildID}, sort, page.Skip(), page.Limit)
}

func roleSet(guildID string, r discord.RemoteRole, now time.Time) bson.M {
	return bson.M{
		"guildId":     guildID,
		"roleId":      r.ID,
		"name":        r.Name,
		"color":       r.Color,
		"hoist":       r.Hoist,
		"position":    r.Position,
		"permissions": r.Permissions,
		"mentionable": r.Mentionable,
		"managed":     r.Managed,
		"updatedAt":   now,
	}
}

// SyncFromDiscord bulk-upserts the remote role list into the mirror, keyed
// by roleId. Local roles absent from the remote list are left in place.
func (s *RoleService) SyncFromDiscord(ctx context.Context, guildID string, remote []discord.RemoteRole) error {
	now := time.Now().UTC()

	writes := make([]mongo.WriteModel, 0, len(remote))
	for _, r := range remote {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"roleId": r.ID}).
			SetUpdate(bson.M{
				"$set":         roleSet(guildID, r, now),
				"$setOnInsert": bson.M{"createdAt": now},
			}).
			SetUpsert(true))
	}
	return s.roles.BulkUpsert(ctx, writes)
}

// UpsertFromRemote writes one role returned by the sync adapter and returns
// the stored mirror document
func (s *RoleService) UpsertFromRemote(ctx context.Context, guildID string, r discord.RemoteRole) (*models.Role, error) {
	return s.roles.Upsert(ctx, bson.M{"roleId": r.ID}, roleSet(guildID, r, time.Now().UTC()))
}

// SetMemberCount records the live holder count on the mirror
func (s *RoleService) SetMemberCount(ctx context.Context, guildID, roleID string, count int) error {
	_, err := s.roles.UpdateOne(ctx, bson.M{"guildId": guildID, "roleId": roleID}, bson.M{
		"$set": bson.M{"memberCount": count, "updatedAt": time.Now().UTC()},
	})
	return err
}

// Delete removes the mirror document for a role
func (s *RoleService) Delete(ctx context.Context, guildID, roleID string) error {
	return s.roles.DeleteOne(ctx, bson.M{"guildId": guildID, "roleId": roleID})
}
