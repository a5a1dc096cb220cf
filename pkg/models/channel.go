package models

import "time"

// ChannelType enumerates the mirrored Discord channel kinds
type ChannelType string

const (
	ChannelTypeText     ChannelType = "text"
	ChannelTypeVoice    ChannelType = "voice"
	ChannelTypeCategory ChannelType = "category"
	ChannelTypeNews     ChannelType = "news"
	ChannelTypeStore    ChannelType = "store"
	ChannelTypeForum    ChannelType = "forum"
)

// ChannelPermission is one permission overwrite on a channel
type ChannelPermission struct {
	RoleID string `bson:"roleId" json:"roleId"`
	Allow  string `bson:"allow" json:"allow"`
	Deny   string `bson:"deny" json:"deny"`
}

// ChannelStats tracks message activity for a mirrored channel
type ChannelStats struct {
	MessageCount int64      `bson:"messageCount" json:"messageCount"`
	UserCount    int        `bson:"userCount" json:"userCount"`
	LastMessage  *time.Time `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	LastActive   *time.Time `bson:"lastActive,omitempty" json:"lastActive,omitempty"`
}

// Channel is a local mirror of a Discord channel. Discord is the source of
// truth; this record is refreshed by SyncFromDiscord.
type Channel struct {
	GuildID          string              `bson:"guildId" json:"guildId"`
	ChannelID        string              `bson:"channelId" json:"channelId"`
	Name             string              `bson:"name" json:"name"`
	Type             ChannelType         `bson:"type" json:"type"`
	Position         int                 `bson:"position" json:"position"`
	ParentID         string              `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Topic            string              `bson:"topic,omitempty" json:"topic,omitempty"`
	NSFW             bool                `bson:"nsfw" json:"nsfw"`
	RateLimitPerUser int                 `bson:"rateLimitPerUser" json:"rateLimitPerUser"`
	Bitrate          int                 `bson:"bitrate,omitempty" json:"bitrate,omitempty"`
	UserLimit        int                 `bson:"userLimit,omitempty" json:"userLimit,omitempty"`
	Permissions      []ChannelPermission `bson:"permissions" json:"permissions"`
	IsModLog         bool                `bson:"isModLog" json:"isModLog"`
	IsWelcome        bool                `bson:"isWelcome" json:"isWelcome"`
	IsAnnouncement   bool                `bson:"isAnnouncement" json:"isAnnouncement"`
	Stats            ChannelStats        `bson:"stats" json:"stats"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SetPermission replaces or appends the overwrite for a role
func (c *Channel) SetPermission(roleID, allow, deny string) {
	for i := range c.Permissions {
		if c.Permissions[i].RoleID == roleID {
			c.Permissions[i] = ChannelPermission{RoleID: roleID, Allow: allow, Deny: deny}
			return
		}
	}
	c.Permissions = append(c.Permissions, ChannelPermission{RoleID: roleID, Allow: allow, Deny: deny})
}
