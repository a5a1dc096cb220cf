// Package discord provides the sync adapter that performs live Discord
// mutations for the dashboard. Discord is the source of truth for guild
// channel/role state; the local mirror is derived from what the adapter
// returns.
package discord

import (
	"context"
	"time"
)

// RemotePermission is one permission overwrite as reported by Discord
type RemotePermission struct {
	RoleID string `json:"roleId"`
	Allow  string `json:"allow"`
	Deny   string `json:"deny"`
}

// RemoteChannel is the canonical channel object returned by Discord
type RemoteChannel struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Type             string             `json:"type"`
	Position         int                `json:"position"`
	ParentID         string             `json:"parentId,omitempty"`
	Topic            string             `json:"topic,omitempty"`
	NSFW             bool               `json:"nsfw"`
	RateLimitPerUser int                `json:"rateLimitPerUser"`
	Bitrate          int                `json:"bitrate,omitempty"`
	UserLimit        int                `json:"userLimit,omitempty"`
	Permissions      []RemotePermission `json:"permissions"`
}

// RemoteRole is the canonical role object returned by Discord
type RemoteRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Hoist       bool   `json:"hoist"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
	Mentionable bool   `json:"mentionable"`
	Managed     bool   `json:"managed"`
	MemberCount int    `json:"memberCount"`
}

// RemoteMember is a guild member as reported by Discord
type RemoteMember struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar,omitempty"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// ChannelParams carries the fields of a channel create/update request
type ChannelParams struct {
	Name             string
	Type             string
	Topic            string
	NSFW             bool
	Bitrate          int
	UserLimit        int
	ParentID         string
	Position         int
	RateLimitPerUser int
	Reason           string
}

// RoleParams carries the fields of a role create/update request
type RoleParams struct {
	Name        string
	Color       int
	Hoist       bool
	Mentionable bool
	Permissions int64
	Reason      string
}

// BanParams carries the options of a guild ban request
type BanParams struct {
	Reason            string
	DeleteMessageDays int
}

// SyncAdapter is the capability set the dashboard needs from the Discord
// HTTP API. Every mutation returns the created/updated remote object so the
// caller can persist the canonical state.
type SyncAdapter interface {
	GetGuildChannels(ctx context.Context, guildID string) ([]RemoteChannel, error)
	CreateGuildChannel(ctx context.Context, guildID string, params ChannelParams) (*RemoteChannel, error)
	UpdateGuildChannel(ctx context.Context, guildID, channelID string, params ChannelParams) (*RemoteChannel, error)
	DeleteGuildChannel(ctx context.Context, guildID, channelID, reason string) error
	UpdateChannelPermissions(ctx context.Context, guildID, channelID, roleID string, allow, deny int64) error

	GetGuildRoles(ctx context.Context, guildID string) ([]RemoteRole, error)
	CreateGuildRole(ctx context.Context, guildID string, params RoleParams) (*RemoteRole, error)
	UpdateGuildRole(ctx context.Context, guildID, roleID string, params RoleParams) (*RemoteRole, error)
	DeleteGuildRole(ctx context.Context, guildID, roleID string) error
	GetGuildRoleMembers(ctx context.Context, guildID, roleID string) ([]RemoteMember, error)

	BanGuildMember(ctx context.Context, guildID, userID string, params BanParams) error
	UnbanGuildMember(ctx context.Context, guildID, userID string) error
}
