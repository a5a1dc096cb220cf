package models

import "time"

// RoleStats tracks assignment activity for a mirrored role
type RoleStats struct {
	AssignCount  int64      `bson:"assignCount" json:"assignCount"`
	RemoveCount  int64      `bson:"removeCount" json:"removeCount"`
	LastAssigned *time.Time `bson:"lastAssigned,omitempty" json:"lastAssigned,omitempty"`
	LastRemoved  *time.Time `bson:"lastRemoved,omitempty" json:"lastRemoved,omitempty"`
}

// Role is a local mirror of a Discord role. Discord is the source of truth;
// this record is refreshed by SyncFromDiscord.
type Role struct {
	GuildID     string    `bson:"guildId" json:"guildId"`
	RoleID      string    `bson:"roleId" json:"roleId"`
	Name        string    `bson:"name" json:"name"`
	Color       string    `bson:"color" json:"color"`
	Hoist       bool      `bson:"hoist" json:"hoist"`
	Position    int       `bson:"position" json:"position"`
	Permissions string    `bson:"permissions" json:"permissions"`
	Mentionable bool      `bson:"mentionable" json:"mentionable"`
	Managed     bool      `bson:"managed" json:"managed"`
	IsAdmin     bool      `bson:"isAdmin" json:"isAdmin"`
	IsModerator bool      `bson:"isModerator" json:"isModerator"`
	MemberCount int       `bson:"memberCount" json:"memberCount"`
	Stats       RoleStats `bson:"stats" json:"stats"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
