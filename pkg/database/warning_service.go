package database

import (
	"context"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WarningService manages moderation warnings. Warnings are never hard
// deleted; every removal path flips the active flag and records the cause.
type WarningService struct {
	warnings *Collection[models.Warning]
}

// NewWarningService creates a WarningService
func NewWarningService(db *Database) *WarningService {
	return &WarningService{
		warnings: NewCollection[models.Warning](db, CollWarnings),
	}
}

// Create inserts a new active warning
func (s *WarningService) Create(ctx context.Context, w *models.Warning) error {
	w.Active = true
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	return s.warnings.InsertOne(ctx, w)
}

// ListForUser returns a user's warnings in a guild, newest first
func (s *WarningService) ListForUser(ctx context.Context, guildID, userID string) ([]models.Warning, error) {
	opts := findSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := s.warnings.Find(ctx, bson.M{"guildId": guildID, "userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Warning{}
	}
	return list, nil
}

// ActiveCount returns the number of active warnings a user holds in a guild
func (s *WarningService) ActiveCount(ctx context.Context, guildID, userID string) (int64, error) {
	return s.warnings.Count(ctx, bson.M{"guildId": guildID, "userId": userID, "active": true})
}

// DeactivateAll soft-deletes every active warning a user holds in a guild
// and returns how many were touched
func (s *WarningService) DeactivateAll(ctx context.Context, guildID, userID, moderatorID, reason string) (int64, error) {
	return s.warnings.UpdateMany(ctx,
		bson.M{"guildId": guildID, "userId": userID, "active": true},
		bson.M{"$set": bson.M{
			"active":       false,
			"deletedAt":    time.Now().UTC(),
			"deletedBy":    moderatorID,
			"deleteReason": reason,
		}},
	)
}

// DeleteExpired soft-deletes every active warning whose expiry has passed.
// Warnings with no expiresAt are never touched.
func (s *WarningService) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.warnings.UpdateMany(ctx,
		bson.M{"active": true, "expiresAt": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{
			"active":       false,
			"deletedAt":    now,
			"deleteReason": "expired",
		}},
	)
}

// ModeratorStat is one moderator's warning count over a window
type ModeratorStat struct {
	ModeratorID string `json:"moderatorId"`
	Count       int64  `json:"count"`
}

// ModeratorStats returns warning counts per moderator since a cutoff,
// busiest moderator first
func (s *WarningService) ModeratorStats(ctx context.Context, guildID string, since time.Time) ([]ModeratorStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"guildId": guildID, "createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$moderatorId", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	rows, err := s.warnings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	stats := make([]ModeratorStat, 0, len(rows))
	for _, row := range rows {
		stat := ModeratorStat{}
		if id, ok := row["_id"].(string); ok {
			stat.ModeratorID = id
		}
		stat.Count = toInt64(row["count"])
		stats = append(stats, stat)
	}
	return stats, nil
}
