package models

import (
	"testing"
	"time"
)

func TestAddGuild(t *testing.T) {
	u := &User{}

	u.AddGuild("g1")
	u.AddGuild("g2")
	u.AddGuild("g1")

	if len(u.Guilds) != 2 {
		t.Fatalf("expected 2 guilds, got %d: %v", len(u.Guilds), u.Guilds)
	}
}

func TestRemoveGuild(t *testing.T) {
	u := &User{Guilds: []string{"g1", "g2", "g3"}}

	u.RemoveGuild("g2")
	if len(u.Guilds) != 2 {
		t.Fatalf("expected 2 guilds, got %d", len(u.Guilds))
	}
	for _, id := range u.Guilds {
		if id == "g2" {
			t.Error("g2 should have been removed")
		}
	}

	// Removing an absent guild is a no-op
	u.RemoveGuild("g9")
	if len(u.Guilds) != 2 {
		t.Errorf("expected 2 guilds after removing absent id, got %d", len(u.Guilds))
	}
}

func TestAddWarning(t *testing.T) {
	u := &User{}
	now := time.Now().UTC()

	u.AddWarning("g1", now)
	u.AddWarning("g1", now.Add(time.Minute))
	u.AddWarning("g2", now.Add(2*time.Minute))

	if u.Warnings != 3 {
		t.Errorf("global warnings = %d, want 3", u.Warnings)
	}
	if len(u.WarningDates) != 3 {
		t.Errorf("warning dates = %d, want 3", len(u.WarningDates))
	}

	var g1 *GuildMemberSettings
	for i := range u.GuildSettings {
		if u.GuildSettings[i].GuildID == "g1" {
			g1 = &u.GuildSettings[i]
		}
	}
	if g1 == nil {
		t.Fatal("expected a guild settings entry for g1")
	}
	if g1.Warnings != 2 {
		t.Errorf("g1 warnings = %d, want 2", g1.Warnings)
	}
}

func TestClearWarnings(t *testing.T) {
	u := &User{}
	now := time.Now().UTC()
	u.AddWarning("g1", now)
	u.AddWarning("g1", now)

	u.ClearWarnings("g1")

	if u.Warnings != 0 {
		t.Errorf("global warnings = %d, want 0", u.Warnings)
	}
	if len(u.WarningDates) != 0 {
		t.Errorf("warning dates = %d, want 0", len(u.WarningDates))
	}
	for _, gs := range u.GuildSettings {
		if gs.GuildID == "g1" && gs.Warnings != 0 {
			t.Errorf("g1 warnings = %d, want 0", gs.Warnings)
		}
	}
}

func TestMuteUnmute(t *testing.T) {
	u := &User{}
	until := time.Now().UTC().Add(time.Hour)

	u.Mute("g1", until)

	gs := u.GuildSettings[0]
	if !gs.IsMuted || gs.MuteEndAt == nil || !gs.MuteEndAt.Equal(until) {
		t.Errorf("mute state not recorded: %+v", gs)
	}

	u.Unmute("g1")

	gs = u.GuildSettings[0]
	if gs.IsMuted || gs.MuteEndAt != nil {
		t.Errorf("unmute did not clear state: %+v", gs)
	}
}

func TestAvatarURL(t *testing.T) {
	u := &User{DiscordID: "123", Avatar: "abc"}
	want := "https://cdn.discordapp.com/avatars/123/abc.png"
	if got := u.AvatarURL(); got != want {
		t.Errorf("AvatarURL() = %q, want %q", got, want)
	}

	u.Avatar = ""
	if got := u.AvatarURL(); got != "" {
		t.Errorf("AvatarURL() = %q, want empty", got)
	}
}

func TestProfile(t *testing.T) {
	u := &User{
		DiscordID: "123",
		Username:  "alice",
		Email:     "alice@example.com",
		IsAdmin:   true,
		BanReason: "secret",
	}

	p := u.Profile()
	if p.ID != "123" || p.Username != "alice" || !p.IsAdmin {
		t.Errorf("unexpected profile: %+v", p)
	}
}
