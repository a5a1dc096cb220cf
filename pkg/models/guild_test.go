package models

import (
	"testing"
	"time"
)

func TestApplyDailyStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	t.Run("appends a new entry for today", func(t *testing.T) {
		g := &Guild{}
		g.ApplyDailyStats(now, DailyStat{Messages: 10})

		if len(g.DailyStats) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(g.DailyStats))
		}
		if !g.DailyStats[0].Date.Equal(Midnight(now)) {
			t.Errorf("entry date = %v, want %v", g.DailyStats[0].Date, Midnight(now))
		}
	})

	t.Run("replaces the entry for the same day", func(t *testing.T) {
		g := &Guild{}
		g.ApplyDailyStats(now, DailyStat{Messages: 10})
		g.ApplyDailyStats(now.Add(2*time.Hour), DailyStat{Messages: 25})

		if len(g.DailyStats) != 1 {
			t.Fatalf("expected 1 entry after same-day update, got %d", len(g.DailyStats))
		}
		if g.DailyStats[0].Messages != 25 {
			t.Errorf("messages = %d, want 25", g.DailyStats[0].Messages)
		}
	})

	t.Run("prunes entries older than 30 days", func(t *testing.T) {
		g := &Guild{
			DailyStats: []DailyStat{
				{Date: Midnight(now.Add(-40 * 24 * time.Hour)), Messages: 1},
				{Date: Midnight(now.Add(-10 * 24 * time.Hour)), Messages: 2},
			},
		}
		g.ApplyDailyStats(now, DailyStat{Messages: 3})

		if len(g.DailyStats) != 2 {
			t.Fatalf("expected 2 entries after prune, got %d", len(g.DailyStats))
		}
		cutoff := now.Add(-30 * 24 * time.Hour)
		for _, s := range g.DailyStats {
			if s.Date.Before(cutoff) {
				t.Errorf("entry dated %v survived the 30-day prune", s.Date)
			}
		}
	})

	t.Run("never produces duplicate dates", func(t *testing.T) {
		g := &Guild{}
		for i := 0; i < 5; i++ {
			g.ApplyDailyStats(now.Add(time.Duration(i)*time.Hour), DailyStat{Messages: int64(i)})
		}

		seen := map[time.Time]bool{}
		for _, s := range g.DailyStats {
			day := Midnight(s.Date)
			if seen[day] {
				t.Fatalf("duplicate entry for %v", day)
			}
			seen[day] = true
		}
	})
}

func TestDailyStatsSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	g := &Guild{
		DailyStats: []DailyStat{
			{Date: now.Add(-1 * 24 * time.Hour), Messages: 3},
			{Date: now.Add(-5 * 24 * time.Hour), Messages: 1},
			{Date: now.Add(-3 * 24 * time.Hour), Messages: 2},
		},
	}

	got := g.DailyStatsSince(now.Add(-4 * 24 * time.Hour))
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !got[0].Date.Before(got[1].Date) {
		t.Error("expected entries sorted oldest first")
	}
	if got[0].Messages != 2 || got[1].Messages != 3 {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestDailyStatFor(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	g := &Guild{}
	g.ApplyDailyStats(now, DailyStat{Commands: 7})

	stat, ok := g.DailyStatFor(now.Add(5 * time.Hour))
	if !ok {
		t.Fatal("expected an entry for today")
	}
	if stat.Commands != 7 {
		t.Errorf("commands = %d, want 7", stat.Commands)
	}

	if _, ok := g.DailyStatFor(now.Add(48 * time.Hour)); ok {
		t.Error("expected no entry two days ahead")
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2025, 6, 15, 23, 59, 59, 123, time.FixedZone("JST", 9*3600))
	got := Midnight(in)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Midnight() = %v, expected start of day", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("Midnight() location = %v, want UTC", got.Location())
	}
}
