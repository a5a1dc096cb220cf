package database

import (
	"context"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/discord"
	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChannelService manages the local channel mirror. Discord is the source of
// truth for channel state; SyncFromDiscord refreshes the mirror from what
// the sync adapter returned. Channels that vanished remotely are kept
// locally.
type ChannelService struct {
	channels *Collection[models.Channel]
}

// NewChannelService creates a ChannelService
func NewChannelService(db *Database) *ChannelService {
	return &ChannelService{
		channels: NewCollection[models.Channel](db, CollChannels),
	}
}

// FindByChannelID returns the mirrored channel, or ErrNotFound
func (s *ChannelService) FindByChannelID(ctx context.Context, guildID, channelID string) (*models.Channel, error) {
	doc, err := s.channels.FindOne(ctx, bson.M{"guildId": guildID, "channelId": channelID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Page returns one page of a guild's channels in position order, optionally
// filtered by channel type
func (s *ChannelService) Page(ctx context.Context, guildID string, channelType models.ChannelType, page Pagination) ([]models.Channel, int64, error) {
	page = page.Normalize()

	filter := bson.M{"guildId": guildID}
	if channelType != "" {
		filter["type"] = channelType
	}

	sort := bson.D{{Key: "position", Value: 1}}
	return s.channels.FindPage(ctx, filter, sort, page.Skip(), page.Limit)
}

// Categories returns a guild's category channels in position order
func (s *ChannelService) Categories(ctx context.Context, guildID string) ([]models.Channel, error) {
	opts := findSort(bson.D{{Key: "position", Value: 1}})
	list, err := s.channels.Find(ctx, bson.M{
		"guildId": guildID,
		"type":    models.ChannelTypeCategory,
	}, opts)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Channel{}
	}
	return list, nil
}

func channelPermissions(perms []discord.RemotePermission) []models.ChannelPermission {
	out := make([]models.ChannelPermission, 0, len(perms))
	for _, p := range perms {
		out = append(out, models.ChannelPermission{RoleID: p.RoleID, Allow: p.Allow, Deny: p.Deny})
	}
	return out
}

func channelSet(guildID string, ch discord.RemoteChannel, now time.Time) bson.M {
	return bson.M{
		"guildId":          guildID,
		"channelId":        ch.ID,
		"name":             ch.Name,
		"type":             ch.Type,
		"position":         ch.Position,
		"parentId":         ch.ParentID,
		"topic":            ch.Topic,
		"nsfw":             ch.NSFW,
		"rateLimitPerUser": ch.RateLimitPerUser,
		"bitrate":          ch.Bitrate,
		"userLimit":        ch.UserLimit,
		"permissions":      channelPermissions(ch.Permissions),
		"updatedAt":        now,
	}
}

// SyncFromDiscord bulk-upserts the remote channel list into the mirror,
// keyed by channelId. Local channels absent from the remote list are left
// in place.
func (s *ChannelService) SyncFromDiscord(ctx context.Context, guildID string, remote []discord.RemoteChannel) error {
	now := time.Now().UTC()

	writes := make([]mongo.WriteModel, 0, len(remote))
	for _, ch := range remote {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"channelId": ch.ID}).
			SetUpdate(bson.M{
				"$set":         channelSet(guildID, ch, now),
				"$setOnInsert": bson.M{"createdAt": now},
			}).
			SetUpsert(true))
	}
	return s.channels.BulkUpsert(ctx, writes)
}

// UpsertFromRemote writes one channel returned by the sync adapter and
// returns the stored mirror document
func (s *ChannelService) UpsertFromRemote(ctx context.Context, guildID string, ch discord.RemoteChannel) (*models.Channel, error) {
	return s.channels.Upsert(ctx, bson.M{"channelId": ch.ID}, channelSet(guildID, ch, time.Now().UTC()))
}

// SetPermission replaces or appends a role overwrite on the mirror document
func (s *ChannelService) SetPermission(ctx context.Context, guildID, channelID, roleID, allow, deny string) (*models.Channel, error) {
	ch, err := s.FindByChannelID(ctx, guildID, channelID)
	if err != nil {
		return nil, err
	}

	ch.SetPermission(roleID, allow, deny)

	_, err = s.channels.UpdateOne(ctx, bson.M{"guildId": guildID, "channelId": channelID}, bson.M{
		"$set": bson.M{"permissions": ch.Permissions, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Delete removes the mirror document for a channel
func (s *ChannelService) Delete(ctx context.Context, guildID, channelID string) error {
	return s.channels.DeleteOne(ctx, bson.M{"guildId": guildID, "channelId": channelID})
}
