package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestChannelTypeMapping(t *testing.T) {
	tests := []struct {
		value discordgo.ChannelType
		name  string
	}{
		{discordgo.ChannelTypeGuildText, "text"},
		{discordgo.ChannelTypeGuildVoice, "voice"},
		{discordgo.ChannelTypeGuildCategory, "category"},
		{discordgo.ChannelTypeGuildNews, "news"},
		{discordgo.ChannelTypeGuildStore, "store"},
		{discordgo.ChannelTypeGuildForum, "forum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := channelTypeString(tt.value); got != tt.name {
				t.Errorf("channelTypeString(%d) = %q, want %q", tt.value, got, tt.name)
			}
			if got := channelTypeValue(tt.name); got != tt.value {
				t.Errorf("channelTypeValue(%q) = %d, want %d", tt.name, got, tt.value)
			}
		})
	}

	// Unknown values fall back to text
	if got := channelTypeString(discordgo.ChannelTypeDM); got != "text" {
		t.Errorf("channelTypeString(DM) = %q, want text", got)
	}
	if got := channelTypeValue("bogus"); got != discordgo.ChannelTypeGuildText {
		t.Errorf("channelTypeValue(bogus) = %d, want text", got)
	}
}

func TestMapRole(t *testing.T) {
	role := &discordgo.Role{
		ID:          "r1",
		Name:        "Mods",
		Color:       0xFF0000,
		Hoist:       true,
		Position:    3,
		Permissions: 8,
		Mentionable: true,
	}

	got := mapRole(role)
	if got.Color != "ff0000" {
		t.Errorf("Color = %q, want %q", got.Color, "ff0000")
	}
	if got.Permissions != "8" {
		t.Errorf("Permissions = %q, want %q", got.Permissions, "8")
	}
	if got.ID != "r1" || got.Name != "Mods" || !got.Hoist || got.Position != 3 {
		t.Errorf("unexpected mapping: %+v", got)
	}
}

func TestMapRoleColorPadding(t *testing.T) {
	role := &discordgo.Role{ID: "r2", Color: 0xFF}
	if got := mapRole(role); got.Color != "0000ff" {
		t.Errorf("Color = %q, want zero-padded %q", got.Color, "0000ff")
	}
}

func TestMapChannel(t *testing.T) {
	ch := &discordgo.Channel{
		ID:       "c1",
		Name:     "general",
		Type:     discordgo.ChannelTypeGuildText,
		Position: 1,
		Topic:    "chat",
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: "r1", Type: discordgo.PermissionOverwriteTypeRole, Allow: 1024, Deny: 2048},
			{ID: "u1", Type: discordgo.PermissionOverwriteTypeMember, Allow: 1, Deny: 0},
		},
	}

	got := mapChannel(ch)
	if got.Type != "text" {
		t.Errorf("Type = %q, want text", got.Type)
	}
	if len(got.Permissions) != 1 {
		t.Fatalf("expected only role overwrites, got %d", len(got.Permissions))
	}
	perm := got.Permissions[0]
	if perm.RoleID != "r1" || perm.Allow != "1024" || perm.Deny != "2048" {
		t.Errorf("unexpected overwrite mapping: %+v", perm)
	}
}
