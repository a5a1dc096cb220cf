// Package models defines the document shapes persisted by the dashboard.
// Field names match the store schema consumed by the dashboard frontend.
package models

import "time"

// GuildStats holds cumulative counters for a guild
type GuildStats struct {
	Messages          int64 `bson:"messages" json:"messages"`
	Commands          int64 `bson:"commands" json:"commands"`
	ModerationActions int64 `bson:"moderationActions" json:"moderationActions"`
	SpamDetections    int64 `bson:"spamDetections" json:"spamDetections"`
	RaidAttempts      int64 `bson:"raidAttempts" json:"raidAttempts"`
}

// DailyStat is a single calendar-day entry in a guild's activity series
type DailyStat struct {
	Date              time.Time `bson:"date" json:"date"`
	Messages          int64     `bson:"messages" json:"messages"`
	Commands          int64     `bson:"commands" json:"commands"`
	ModerationActions int64     `bson:"moderationActions" json:"moderationActions"`
	NewMembers        int64     `bson:"newMembers" json:"newMembers"`
	LeftMembers       int64     `bson:"leftMembers" json:"leftMembers"`
}

// GuildSettingsMirror is the settings subset denormalized onto the guild
// document so the dashboard guild list can render without a second query.
// SettingsService.Update refreshes it after every settings write.
type GuildSettingsMirror struct {
	Prefix           string          `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Language         string          `bson:"language,omitempty" json:"language,omitempty"`
	ModRoleID        string          `bson:"modRoleId,omitempty" json:"modRoleId,omitempty"`
	AdminRoleID      string          `bson:"adminRoleId,omitempty" json:"adminRoleId,omitempty"`
	LogChannelID     string          `bson:"logChannelId,omitempty" json:"logChannelId,omitempty"`
	WelcomeChannelID string          `bson:"welcomeChannelId,omitempty" json:"welcomeChannelId,omitempty"`
	WelcomeMessage   string          `bson:"welcomeMessage,omitempty" json:"welcomeMessage,omitempty"`
	LeaveMessage     string          `bson:"leaveMessage,omitempty" json:"leaveMessage,omitempty"`
	SpamProtection   *SpamProtection `bson:"spamProtection,omitempty" json:"spamProtection,omitempty"`
	RaidProtection   *RaidProtection `bson:"raidProtection,omitempty" json:"raidProtection,omitempty"`
}

// Guild mirrors a Discord server the bot moderates
type Guild struct {
	GuildID      string              `bson:"guildId" json:"guildId"`
	Name         string              `bson:"name" json:"name"`
	Icon         string              `bson:"icon,omitempty" json:"icon,omitempty"`
	OwnerID      string              `bson:"ownerId" json:"ownerId"`
	IsPremium    bool                `bson:"isPremium" json:"isPremium"`
	PremiumUntil *time.Time          `bson:"premiumUntil,omitempty" json:"premiumUntil,omitempty"`
	MemberCount  int                 `bson:"memberCount" json:"memberCount"`
	BotCount     int                 `bson:"botCount" json:"botCount"`
	ChannelCount int                 `bson:"channelCount" json:"channelCount"`
	RoleCount    int                 `bson:"roleCount" json:"roleCount"`
	Region       string              `bson:"region,omitempty" json:"region,omitempty"`
	Features     []string            `bson:"features" json:"features"`
	Stats        GuildStats          `bson:"stats" json:"stats"`
	DailyStats   []DailyStat         `bson:"dailyStats" json:"dailyStats"`
	Settings     GuildSettingsMirror `bson:"settings,omitempty" json:"settings,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// dailyStatsWindow is how far back the dailyStats series is retained
const dailyStatsWindow = 30 * 24 * time.Hour

// Midnight truncates a time to the start of its calendar day (UTC)
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ApplyDailyStats merges entry into the guild's dailyStats series for the
// calendar day of now. Existing entries for the same date are overwritten,
// never duplicated, and entries older than 30 days are pruned.
func (g *Guild) ApplyDailyStats(now time.Time, entry DailyStat) {
	today := Midnight(now)
	entry.Date = today

	replaced := false
	for i := range g.DailyStats {
		if Midnight(g.DailyStats[i].Date).Equal(today) {
			g.DailyStats[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		g.DailyStats = append(g.DailyStats, entry)
	}

	cutoff := now.UTC().Add(-dailyStatsWindow)
	kept := g.DailyStats[:0]
	for _, s := range g.DailyStats {
		if !s.Date.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	g.DailyStats = kept
}

// DailyStatsSince returns the entries on or after cutoff, oldest first
func (g *Guild) DailyStatsSince(cutoff time.Time) []DailyStat {
	out := make([]DailyStat, 0, len(g.DailyStats))
	for _, s := range g.DailyStats {
		if !s.Date.Before(cutoff) {
			out = append(out, s)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Date.Before(out[j-1].Date); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// DailyStatFor returns the entry for the calendar day of t, if present
func (g *Guild) DailyStatFor(t time.Time) (DailyStat, bool) {
	day := Midnight(t)
	for _, s := range g.DailyStats {
		if Midnight(s.Date).Equal(day) {
			return s, true
		}
	}
	return DailyStat{}, false
}
