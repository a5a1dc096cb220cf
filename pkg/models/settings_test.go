package models

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("guild-1")

	if s.GuildID != "guild-1" {
		t.Errorf("GuildID = %q, want %q", s.GuildID, "guild-1")
	}
	if s.Prefix != "!" {
		t.Errorf("Prefix = %q, want %q", s.Prefix, "!")
	}
	if s.Language != "ja" {
		t.Errorf("Language = %q, want %q", s.Language, "ja")
	}
	if s.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, want %q", s.Timezone, "Asia/Tokyo")
	}
	if s.AutoRoles == nil {
		t.Error("AutoRoles should be an empty slice, not nil")
	}

	if !s.SpamProtection.Enabled {
		t.Error("SpamProtection should be enabled by default")
	}
	if s.SpamProtection.MessageLimit != 5 || s.SpamProtection.TimeWindow != 5 {
		t.Errorf("spam thresholds = %d/%d, want 5/5",
			s.SpamProtection.MessageLimit, s.SpamProtection.TimeWindow)
	}
	if s.SpamProtection.Punishment != PunishmentWarn {
		t.Errorf("spam punishment = %q, want %q", s.SpamProtection.Punishment, PunishmentWarn)
	}

	if !s.RaidProtection.Enabled {
		t.Error("RaidProtection should be enabled by default")
	}
	if s.RaidProtection.Punishment != PunishmentKick {
		t.Errorf("raid punishment = %q, want %q", s.RaidProtection.Punishment, PunishmentKick)
	}

	if !s.Automod.Enabled {
		t.Error("Automod should be enabled by default")
	}
	if s.Automod.CapsLimit != 70 {
		t.Errorf("CapsLimit = %d, want 70", s.Automod.CapsLimit)
	}

	if s.Warnings.MaxWarnings != 3 {
		t.Errorf("MaxWarnings = %d, want 3", s.Warnings.MaxWarnings)
	}
	if s.Warnings.Punishment != PunishmentMute {
		t.Errorf("warning punishment = %q, want %q", s.Warnings.Punishment, PunishmentMute)
	}
	if s.Warnings.ExpireAfter != 30 {
		t.Errorf("ExpireAfter = %d, want 30", s.Warnings.ExpireAfter)
	}

	if s.Mute.DefaultDuration != 3600 || s.Mute.MaxDuration != 604800 {
		t.Errorf("mute durations = %d/%d, want 3600/604800",
			s.Mute.DefaultDuration, s.Mute.MaxDuration)
	}
}

func TestSettingsPredicates(t *testing.T) {
	s := DefaultSettings("guild-1")

	if !s.IsSpamProtected() || !s.IsRaidProtected() || !s.IsAutoModEnabled() {
		t.Error("default settings should enable all protection blocks")
	}
	if !s.ShouldWarn() {
		t.Error("default settings should escalate warnings")
	}

	s.SpamProtection.Enabled = false
	s.Warnings.MaxWarnings = 0

	if s.IsSpamProtected() {
		t.Error("IsSpamProtected() should be false when disabled")
	}
	if s.ShouldWarn() {
		t.Error("ShouldWarn() should be false when MaxWarnings is 0")
	}
}
