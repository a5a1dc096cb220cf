package database

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// AnalyticsService derives dashboard metrics from the stored documents
type AnalyticsService struct {
	guilds   *Collection[models.Guild]
	users    *Collection[models.User]
	warnings *Collection[models.Warning]
	logs     *LogService
}

// NewAnalyticsService creates an AnalyticsService
func NewAnalyticsService(db *Database) *AnalyticsService {
	return &AnalyticsService{
		guilds:   NewCollection[models.Guild](db, CollGuilds),
		users:    NewCollection[models.User](db, CollUsers),
		warnings: NewCollection[models.Warning](db, CollWarnings),
		logs:     NewLogService(db),
	}
}

// ActiveUserRate returns active/total as a percentage rounded to two
// decimals. Zero totals yield zero, never a division error.
func ActiveUserRate(active, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(active)/float64(total)*10000) / 100
}

// Overview is the top-level dashboard summary for one guild
type Overview struct {
	Guild             *models.Guild `json:"guild"`
	TotalUsers        int64         `json:"totalUsers"`
	ActiveUsers       int64         `json:"activeUsers"`
	ActiveUserRate    float64       `json:"activeUserRate"`
	BannedUsers       int64         `json:"bannedUsers"`
	TotalMessages     int64         `json:"totalMessages"`
	MessagesToday     int64         `json:"messagesToday"`
	TotalCommands     int64         `json:"totalCommands"`
	CommandsToday     int64         `json:"commandsToday"`
	SpamDetections    int64         `json:"spamDetections"`
	RaidAttempts      int64         `json:"raidAttempts"`
	ModerationActions int64         `json:"moderationActions"`
	TotalWarnings     int64         `json:"totalWarnings"`
	ActiveWarnings    int64         `json:"activeWarnings"`
}

// Overview collects the summary counts for a guild: cumulative and same-day
// message/command totals and detection counters from the guild document,
// user and warning counts, and the 30-day manual moderation action count
// from the audit log. The independent lookups run concurrently; the first
// error wins.
func (s *AnalyticsService) Overview(ctx context.Context, guildID string) (*Overview, error) {
	overview := &Overview{}
	now := time.Now().UTC()
	activeCutoff := now.Add(-7 * 24 * time.Hour)
	moderationCutoff := now.Add(-30 * 24 * time.Hour)

	tasks := []func() error{
		func() error {
			g, err := s.guilds.FindOne(ctx, bson.M{"guildId": guildID})
			if err != nil {
				return err
			}
			if g == nil {
				return ErrNotFound
			}
			overview.Guild = g
			overview.TotalMessages = g.Stats.Messages
			overview.TotalCommands = g.Stats.Commands
			overview.SpamDetections = g.Stats.SpamDetections
			overview.RaidAttempts = g.Stats.RaidAttempts
			if today, ok := g.DailyStatFor(now); ok {
				overview.MessagesToday = today.Messages
				overview.CommandsToday = today.Commands
			}
			return nil
		},
		func() error {
			n, err := s.logs.CountActions(ctx, guildID, moderationActions, moderationCutoff)
			overview.ModerationActions = n
			return err
		},
		func() error {
			n, err := s.users.Count(ctx, bson.M{"guilds": guildID})
			overview.TotalUsers = n
			return err
		},
		func() error {
			n, err := s.users.Count(ctx, bson.M{
				"guilds":     guildID,
				"lastActive": bson.M{"$gte": activeCutoff},
			})
			overview.ActiveUsers = n
			return err
		},
		func() error {
			n, err := s.users.Count(ctx, bson.M{"guilds": guildID, "isBanned": true})
			overview.BannedUsers = n
			return err
		},
		func() error {
			n, err := s.warnings.Count(ctx, bson.M{"guildId": guildID})
			overview.TotalWarnings = n
			return err
		},
		func() error {
			n, err := s.warnings.Count(ctx, bson.M{"guildId": guildID, "active": true})
			overview.ActiveWarnings = n
			return err
		},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, task := range tasks {
		wg.Add(1)
		go func(run func() error) {
			defer wg.Done()
			if err := run(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(task)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	overview.ActiveUserRate = ActiveUserRate(overview.ActiveUsers, overview.TotalUsers)
	return overview, nil
}

// Activity returns the guild's daily activity series for the last `days`
// calendar days, oldest first
func (s *AnalyticsService) Activity(ctx context.Context, guildID string, days int) ([]models.DailyStat, error) {
	if days <= 0 || days > 30 {
		days = 7
	}

	g, err := s.guilds.FindOne(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	cutoff := models.Midnight(time.Now().UTC()).Add(-time.Duration(days-1) * 24 * time.Hour)
	return g.DailyStatsSince(cutoff), nil
}

// CommandStats returns the most-used commands over the last `days` days
func (s *AnalyticsService) CommandStats(ctx context.Context, guildID string, days int) ([]CommandStat, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return s.logs.CommandStats(ctx, guildID, since, 10)
}

// ModerationStats is the breakdown of manual actions and automated
// detections over a window
type ModerationStats struct {
	Actions    map[string]int64 `json:"actions"`
	Detections map[string]int64 `json:"detections"`
	Total      int64            `json:"total"`
}

// moderation action types surfaced in the dashboard breakdown
var moderationActions = []models.ActionType{
	models.ActionWarn, models.ActionMute, models.ActionKick, models.ActionBan,
}

// ModerationStats aggregates manual moderation actions and automated spam
// detections over the last `days` days
func (s *AnalyticsService) ModerationStats(ctx context.Context, guildID string, days int) (*ModerationStats, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	actionCounts, err := s.logs.ActionStats(ctx, guildID, since)
	if err != nil {
		return nil, err
	}
	detectionCounts, err := s.logs.DetectionStats(ctx, guildID, since)
	if err != nil {
		return nil, err
	}

	stats := &ModerationStats{
		Actions:    make(map[string]int64, len(moderationActions)),
		Detections: detectionCounts,
	}
	for _, action := range moderationActions {
		count := actionCounts[string(action)]
		stats.Actions[string(action)] = count
		stats.Total += count
	}
	for _, count := range detectionCounts {
		stats.Total += count
	}
	return stats, nil
}

// UserStats summarizes member movement and sanctions over a window
type UserStats struct {
	NewMembers  int64 `json:"newMembers"`
	LeftMembers int64 `json:"leftMembers"`
	WarnedUsers int64 `json:"warnedUsers"`
	BannedUsers int64 `json:"bannedUsers"`
}

// userStatsFilters builds the user-collection queries behind UserStats: new
// members by document creation, warned members by warningDates entries in
// the window (each user counted once regardless of how many warnings they
// took), banned members by ban timestamp.
func userStatsFilters(guildID string, since time.Time) (newUsers, warnedUsers, bannedUsers bson.M) {
	newUsers = bson.M{"guilds": guildID, "createdAt": bson.M{"$gte": since}}
	warnedUsers = bson.M{"guilds": guildID, "warningDates": bson.M{"$elemMatch": bson.M{"$gte": since}}}
	bannedUsers = bson.M{"guilds": guildID, "isBanned": true, "bannedAt": bson.M{"$gte": since}}
	return newUsers, warnedUsers, bannedUsers
}

// UserStats aggregates member movement and sanction counts over the last
// `days` days. New/warned/banned come from the users collection; departures
// come from member_leave audit entries.
func (s *AnalyticsService) UserStats(ctx context.Context, guildID string, days int) (*UserStats, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	newFilter, warnedFilter, bannedFilter := userStatsFilters(guildID, since)

	stats := &UserStats{}
	var err error
	if stats.NewMembers, err = s.users.Count(ctx, newFilter); err != nil {
		return nil, err
	}
	left, err := s.logs.CountActions(ctx, guildID, []models.ActionType{models.ActionMemberLeave}, since)
	if err != nil {
		return nil, err
	}
	stats.LeftMembers = left

	if stats.WarnedUsers, err = s.users.Count(ctx, warnedFilter); err != nil {
		return nil, err
	}
	if stats.BannedUsers, err = s.users.Count(ctx, bannedFilter); err != nil {
		return nil, err
	}
	return stats, nil
}
