package database

import (
	"testing"
	"time"

	"github.com/ShardBotStudio/ShardDashGo/pkg/models"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
)

func TestActiveUserRate(t *testing.T) {
	tests := []struct {
		name   string
		active int64
		total  int64
		want   float64
	}{
		{"zero total yields zero", 5, 0, 0},
		{"zero active", 0, 100, 0},
		{"half", 50, 100, 50},
		{"rounds to two decimals", 1, 3, 33.33},
		{"rounds up", 2, 3, 66.67},
		{"full", 100, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActiveUserRate(tt.active, tt.total); got != tt.want {
				t.Errorf("ActiveUserRate(%d, %d) = %v, want %v", tt.active, tt.total, got, tt.want)
			}
		})
	}
}

func TestOverviewFieldSet(t *testing.T) {
	data, err := json.Marshal(&Overview{})
	if err != nil {
		t.Fatalf("marshaling overview: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshaling overview: %v", err)
	}

	want := []string{
		"guild", "totalUsers", "activeUsers", "activeUserRate", "bannedUsers",
		"totalMessages", "messagesToday", "totalCommands", "commandsToday",
		"spamDetections", "raidAttempts", "moderationActions",
		"totalWarnings", "activeWarnings",
	}
	for _, key := range want {
		if _, ok := fields[key]; !ok {
			t.Errorf("overview payload is missing %q", key)
		}
	}
}

func TestModerationActionSet(t *testing.T) {
	want := []models.ActionType{
		models.ActionWarn, models.ActionMute, models.ActionKick, models.ActionBan,
	}

	if len(moderationActions) != len(want) {
		t.Fatalf("moderationActions = %v, want %v", moderationActions, want)
	}
	for i, action := range want {
		if moderationActions[i] != action {
			t.Errorf("moderationActions[%d] = %q, want %q", i, moderationActions[i], action)
		}
	}
}

func TestUserStatsFilters(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newFilter, warnedFilter, bannedFilter := userStatsFilters("g1", since)

	t.Run("new members by document creation", func(t *testing.T) {
		if newFilter["guilds"] != "g1" {
			t.Errorf("guilds = %v, want g1", newFilter["guilds"])
		}
		created, ok := newFilter["createdAt"].(bson.M)
		if !ok {
			t.Fatalf("createdAt filter missing: %v", newFilter)
		}
		if got, _ := created["$gte"].(time.Time); !got.Equal(since) {
			t.Errorf("createdAt $gte = %v, want %v", created["$gte"], since)
		}
	})

	t.Run("warned members counted once per user", func(t *testing.T) {
		dates, ok := warnedFilter["warningDates"].(bson.M)
		if !ok {
			t.Fatalf("warningDates filter missing: %v", warnedFilter)
		}
		if _, ok := dates["$elemMatch"]; !ok {
			t.Errorf("expected $elemMatch on warningDates, got %v", dates)
		}
	})

	t.Run("banned members by ban timestamp", func(t *testing.T) {
		if bannedFilter["isBanned"] != true {
			t.Errorf("isBanned = %v, want true", bannedFilter["isBanned"])
		}
		banned, ok := bannedFilter["bannedAt"].(bson.M)
		if !ok {
			t.Fatalf("bannedAt filter missing: %v", bannedFilter)
		}
		if got, _ := banned["$gte"].(time.Time); !got.Equal(since) {
			t.Errorf("bannedAt $gte = %v, want %v", banned["$gte"], since)
		}
	})
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int32", int32(7), 7},
		{"int64", int64(9), 9},
		{"int", 3, 3},
		{"float64", float64(4), 4},
		{"unsupported", "nope", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toInt64(tt.in); got != tt.want {
				t.Errorf("toInt64(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
