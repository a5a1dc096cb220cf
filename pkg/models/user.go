package models

import (
	"fmt"
	"time"
)

// GuildMemberSettings is a user's per-guild state
type GuildMemberSettings struct {
	GuildID   string     `bson:"guildId" json:"guildId"`
	Nickname  string     `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Roles     []string   `bson:"roles" json:"roles"`
	JoinedAt  *time.Time `bson:"joinedAt,omitempty" json:"joinedAt,omitempty"`
	IsMuted   bool       `bson:"isMuted" json:"isMuted"`
	MuteEndAt *time.Time `bson:"muteEndAt,omitempty" json:"muteEndAt,omitempty"`
	Warnings  int        `bson:"warnings" json:"warnings"`
}

// User is a dashboard or guild member account, keyed by Discord ID
type User struct {
	DiscordID     string                `bson:"discordId" json:"discordId"`
	Username      string                `bson:"username" json:"username"`
	Email         string                `bson:"email,omitempty" json:"email,omitempty"`
	Avatar        string                `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsAdmin       bool                  `bson:"isAdmin" json:"isAdmin"`
	IsBanned      bool                  `bson:"isBanned" json:"isBanned"`
	BanReason     string                `bson:"banReason,omitempty" json:"-"`
	BannedAt      *time.Time            `bson:"bannedAt,omitempty" json:"bannedAt,omitempty"`
	Guilds        []string              `bson:"guilds" json:"guilds"`
	Warnings      int                   `bson:"warnings" json:"warnings"`
	WarningDates  []time.Time           `bson:"warningDates" json:"warningDates"`
	LastLogin     time.Time             `bson:"lastLogin" json:"lastLogin"`
	LastActive    time.Time             `bson:"lastActive" json:"lastActive"`
	GuildSettings []GuildMemberSettings `bson:"guildSettings" json:"guildSettings"`
	CreatedAt     time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// AvatarURL builds the CDN URL for the user's avatar, empty when unset
func (u *User) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.DiscordID, u.Avatar)
}

// AddGuild records guild membership; duplicates are never added
func (u *User) AddGuild(guildID string) {
	for _, id := range u.Guilds {
		if id == guildID {
			return
		}
	}
	u.Guilds = append(u.Guilds, guildID)
}

// RemoveGuild drops guild membership
func (u *User) RemoveGuild(guildID string) {
	kept := u.Guilds[:0]
	for _, id := range u.Guilds {
		if id != guildID {
			kept = append(kept, id)
		}
	}
	u.Guilds = kept
}

// guildSetting returns the per-guild entry, creating it when missing
func (u *User) guildSetting(guildID string) *GuildMemberSettings {
	for i := range u.GuildSettings {
		if u.GuildSettings[i].GuildID == guildID {
			return &u.GuildSettings[i]
		}
	}
	u.GuildSettings = append(u.GuildSettings, GuildMemberSettings{GuildID: guildID})
	return &u.GuildSettings[len(u.GuildSettings)-1]
}

// AddWarning bumps the global and per-guild warning counters
func (u *User) AddWarning(guildID string, at time.Time) {
	u.Warnings++
	u.WarningDates = append(u.WarningDates, at)
	u.guildSetting(guildID).Warnings++
}

// ClearWarnings resets the global and per-guild warning counters
func (u *User) ClearWarnings(guildID string) {
	u.Warnings = 0
	u.WarningDates = nil
	for i := range u.GuildSettings {
		if u.GuildSettings[i].GuildID == guildID {
			u.GuildSettings[i].Warnings = 0
		}
	}
}

// Mute marks the user muted in a guild until now+duration
func (u *User) Mute(guildID string, until time.Time) {
	gs := u.guildSetting(guildID)
	gs.IsMuted = true
	gs.MuteEndAt = &until
}

// Unmute clears the mute state in a guild
func (u *User) Unmute(guildID string) {
	for i := range u.GuildSettings {
		if u.GuildSettings[i].GuildID == guildID {
			u.GuildSettings[i].IsMuted = false
			u.GuildSettings[i].MuteEndAt = nil
		}
	}
}

// PublicProfile is the shape returned by the auth endpoints
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Profile projects the fields safe to hand to the frontend
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:       u.DiscordID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		IsAdmin:  u.IsAdmin,
	}
}
