package models

import "time"

// Punishment is the action applied when a protection threshold trips
type Punishment string

const (
	PunishmentNone Punishment = "none"
	PunishmentWarn Punishment = "warn"
	PunishmentMute Punishment = "mute"
	PunishmentKick Punishment = "kick"
	PunishmentBan  Punishment = "ban"
)

// SpamProtection holds the anti-spam policy block
type SpamProtection struct {
	Enabled      bool       `bson:"enabled" json:"enabled"`
	MessageLimit int        `bson:"messageLimit" json:"messageLimit"`
	TimeWindow   int        `bson:"timeWindow" json:"timeWindow"`
	MentionLimit int        `bson:"mentionLimit" json:"mentionLimit"`
	EmojiLimit   int        `bson:"emojiLimit" json:"emojiLimit"`
	Punishment   Punishment `bson:"punishment" json:"punishment"`
}

// RaidProtection holds the anti-raid policy block
type RaidProtection struct {
	Enabled    bool       `bson:"enabled" json:"enabled"`
	JoinLimit  int        `bson:"joinLimit" json:"joinLimit"`
	TimeWindow int        `bson:"timeWindow" json:"timeWindow"`
	AccountAge int        `bson:"accountAge" json:"accountAge"`
	Punishment Punishment `bson:"punishment" json:"punishment"`
}

// Automod holds the automatic content filtering policy block
type Automod struct {
	Enabled           bool       `bson:"enabled" json:"enabled"`
	BannedWords       []string   `bson:"bannedWords" json:"bannedWords"`
	InviteLinks       bool       `bson:"inviteLinks" json:"inviteLinks"`
	DuplicateMessages bool       `bson:"duplicateMessages" json:"duplicateMessages"`
	CapsLimit         int        `bson:"capsLimit" json:"capsLimit"`
	Punishment        Punishment `bson:"punishment" json:"punishment"`
}

// WarningPolicy holds the warning escalation policy block
type WarningPolicy struct {
	MaxWarnings int        `bson:"maxWarnings" json:"maxWarnings"`
	Punishment  Punishment `bson:"punishment" json:"punishment"`
	ExpireAfter int        `bson:"expireAfter" json:"expireAfter"` // days
}

// MutePolicy holds mute duration limits (seconds)
type MutePolicy struct {
	DefaultDuration int `bson:"defaultDuration" json:"defaultDuration"`
	MaxDuration     int `bson:"maxDuration" json:"maxDuration"`
}

// Settings is the per-guild moderation configuration. Exactly one document
// exists per guildId; absent settings imply DefaultSettings output.
type Settings struct {
	GuildID          string         `bson:"guildId" json:"guildId"`
	Prefix           string         `bson:"prefix" json:"prefix"`
	Language         string         `bson:"language" json:"language"`
	Timezone         string         `bson:"timezone" json:"timezone"`
	ModRoleID        string         `bson:"modRoleId,omitempty" json:"modRoleId,omitempty"`
	AdminRoleID      string         `bson:"adminRoleId,omitempty" json:"adminRoleId,omitempty"`
	MuteRoleID       string         `bson:"muteRoleId,omitempty" json:"muteRoleId,omitempty"`
	AutoRoles        []string       `bson:"autoRoles" json:"autoRoles"`
	LogChannelID     string         `bson:"logChannelId,omitempty" json:"logChannelId,omitempty"`
	WelcomeChannelID string         `bson:"welcomeChannelId,omitempty" json:"welcomeChannelId,omitempty"`
	ModLogChannelID  string         `bson:"modLogChannelId,omitempty" json:"modLogChannelId,omitempty"`
	WelcomeMessage   string         `bson:"welcomeMessage,omitempty" json:"welcomeMessage,omitempty"`
	LeaveMessage     string         `bson:"leaveMessage,omitempty" json:"leaveMessage,omitempty"`
	SpamProtection   SpamProtection `bson:"spamProtection" json:"spamProtection"`
	RaidProtection   RaidProtection `bson:"raidProtection" json:"raidProtection"`
	Automod          Automod        `bson:"automod" json:"automod"`
	Warnings         WarningPolicy  `bson:"warnings" json:"warnings"`
	Mute             MutePolicy     `bson:"mute" json:"mute"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings returns the system defaults applied when a guild has no
// stored configuration
func DefaultSettings(guildID string) Settings {
	now := time.Now().UTC()
	return Settings{
		GuildID:   guildID,
		Prefix:    "!",
		Language:  "ja",
		Timezone:  "Asia/Tokyo",
		AutoRoles: []string{},
		SpamProtection: SpamProtection{
			Enabled:      true,
			MessageLimit: 5,
			TimeWindow:   5,
			MentionLimit: 5,
			EmojiLimit:   20,
			Punishment:   PunishmentWarn,
		},
		RaidProtection: RaidProtection{
			Enabled:    true,
			JoinLimit:  10,
			TimeWindow: 60,
			AccountAge: 7,
			Punishment: PunishmentKick,
		},
		Automod: Automod{
			Enabled:           true,
			BannedWords:       []string{},
			InviteLinks:       true,
			DuplicateMessages: true,
			CapsLimit:         70,
			Punishment:        PunishmentWarn,
		},
		Warnings: WarningPolicy{
			MaxWarnings: 3,
			Punishment:  PunishmentMute,
			ExpireAfter: 30,
		},
		Mute: MutePolicy{
			DefaultDuration: 3600,
			MaxDuration:     604800,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSpamProtected reports whether the anti-spam block is active
func (s *Settings) IsSpamProtected() bool {
	return s.SpamProtection.Enabled
}

// IsRaidProtected reports whether the anti-raid block is active
func (s *Settings) IsRaidProtected() bool {
	return s.RaidProtection.Enabled
}

// IsAutoModEnabled reports whether automod filtering is active
func (s *Settings) IsAutoModEnabled() bool {
	return s.Automod.Enabled
}

// ShouldWarn reports whether the warning system escalates at all
func (s *Settings) ShouldWarn() bool {
	return s.Warnings.MaxWarnings > 0
}
