package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LogService manages the append-only audit and spam log collections. Both
// are TTL-bounded server-side (30 and 7 days), so queries never need to
// prune by age themselves.
type LogService struct {
	audits *Collection[models.AuditLog]
	spams  *Collection[models.SpamLog]
}

// NewLogService creates a LogService
func NewLogService(db *Database) *LogService {
	return &LogService{
		audits: NewCollection[models.AuditLog](db, CollAuditLogs),
		spams:  NewCollection[models.SpamLog](db, CollSpamLogs),
	}
}

// AddAudit appends an audit log entry
func (s *LogService) AddAudit(ctx context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.audits.InsertOne(ctx, entry)
}

// AddSpam appends a spam detection entry
func (s *LogService) AddSpam(ctx context.Context, entry *models.SpamLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.spams.InsertOne(ctx, entry)
}

// AuditPage returns one page of a guild's audit log, newest first,
// optionally filtered by action type
func (s *LogService) AuditPage(ctx context.Context, guildID string, action models.ActionType, page Pagination) ([]models.AuditLog, int64, error) {
	page = page.Normalize()

	filter := bson.M{"guildId": guildID}
	if action != "" {
		filter["actionType"] = action
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	return s.audits.FindPage(ctx, filter, sort, page.Skip(), page.Limit)
}

// SpamPage returns one page of a guild's spam log, newest first, optionally
// filtered by detection type
func (s *LogService) SpamPage(ctx context.Context, guildID string, detection models.DetectionType, page Pagination) ([]models.SpamLog, int64, error) {
	page = page.Normalize()

	filter := bson.M{"guildId": guildID}
	if detection != "" {
		filter["detectionType"] = detection
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	return s.spams.FindPage(ctx, filter, sort, page.Skip(), page.Limit)
}

// AuditAfter returns the audit entries created strictly after a timestamp,
// oldest first. Used by the live log stream.
func (s *LogService) AuditAfter(ctx context.Context, guildID string, after time.Time) ([]models.AuditLog, error) {
	opts := findSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(100)
	list, err := s.audits.Find(ctx, bson.M{
		"guildId":   guildID,
		"createdAt": bson.M{"$gt": after},
	}, opts)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Clear removes a guild's log entries. kind selects "audit", "spam" or
// "all"; the returned counts report how many documents each collection lost.
func (s *LogService) Clear(ctx context.Context, guildID, kind string) (auditDeleted, spamDeleted int64, err error) {
	if kind != "audit" && kind != "spam" && kind != "all" {
		return 0, 0, fmt.Errorf("unknown log kind %q", kind)
	}

	if kind == "audit" || kind == "all" {
		auditDeleted, err = s.audits.DeleteMany(ctx, bson.M{"guildId": guildID})
		if err != nil {
			return 0, 0, err
		}
	}
	if kind == "spam" || kind == "all" {
		spamDeleted, err = s.spams.DeleteMany(ctx, bson.M{"guildId": guildID})
		if err != nil {
			return auditDeleted, 0, err
		}
	}
	return auditDeleted, spamDeleted, nil
}

// ExportAudit returns every audit entry in [from, to], oldest first
func (s *LogService) ExportAudit(ctx context.Context, guildID string, from, to time.Time) ([]models.AuditLog, error) {
	opts := findSort(bson.D{{Key: "createdAt", Value: 1}})
	list, err := s.audits.Find(ctx, bson.M{
		"guildId":   guildID,
		"createdAt": bson.M{"$gte": from, "$lte": to},
	}, opts)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.AuditLog{}
	}
	return list, nil
}

// ExportSpam returns every spam entry in [from, to], oldest first
func (s *LogService) ExportSpam(ctx context.Context, guildID string, from, to time.Time) ([]models.SpamLog, error) {
	opts := findSort(bson.D{{Key: "createdAt", Value: 1}})
	list, err := s.spams.Find(ctx, bson.M{
		"guildId":   guildID,
		"createdAt": bson.M{"$gte": from, "$lte": to},
	}, opts)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.SpamLog{}
	}
	return list, nil
}

// CountActions counts audit entries of the given action types since a cutoff
func (s *LogService) CountActions(ctx context.Context, guildID string, actions []models.ActionType, since time.Time) (int64, error) {
	return s.audits.Count(ctx, bson.M{
		"guildId":    guildID,
		"actionType": bson.M{"$in": actions},
		"createdAt":  bson.M{"$gte": since},
	})
}

func groupCounts(rows []bson.M) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		key, ok := row["_id"].(string)
		if !ok {
			continue
		}
		out[key] = toInt64(row["count"])
	}
	return out
}

// ActionStats returns audit entry counts grouped by action type since a
// cutoff
func (s *LogService) ActionStats(ctx context.Context, guildID string, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"guildId": guildID, "createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$actionType", "count": bson.M{"$sum": 1}}}},
	}

	rows, err := s.audits.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return groupCounts(rows), nil
}

// DetectionStats returns spam entry counts grouped by detection type since
// a cutoff
func (s *LogService) DetectionStats(ctx context.Context, guildID string, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"guildId": guildID, "createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$detectionType", "count": bson.M{"$sum": 1}}}},
	}

	rows, err := s.spams.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return groupCounts(rows), nil
}

// CommandStat is one command's usage count over a window
type CommandStat struct {
	Command string `json:"command"`
	Count   int64  `json:"count"`
}

// CommandStats returns the most-used commands since a cutoff, derived from
// audit entries of type "command" carrying a details.command field
func (s *LogService) CommandStats(ctx context.Context, guildID string, since time.Time, limit int) ([]CommandStat, error) {
	if limit <= 0 {
		limit = 10
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"guildId":    guildID,
			"actionType": models.ActionCommand,
			"createdAt":  bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$details.command", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	rows, err := s.audits.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	stats := make([]CommandStat, 0, len(rows))
	for _, row := range rows {
		stat := CommandStat{Count: toInt64(row["count"])}
		if name, ok := row["_id"].(string); ok {
			stat.Command = name
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
