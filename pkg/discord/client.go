package discord

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/ShardBotStudio/ShardDashGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// Client implements SyncAdapter against the Discord HTTP API using the bot
// token. Only REST calls are made; no gateway session is opened.
type Client struct {
	Session *discordgo.Session
}

var (
	client *Client
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token string) (*Client, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *Client {
	return client
}

// NewClient creates a new Client
func NewClient(token string) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.LogLevel = discordgo.LogWarning
	return &Client{Session: session}, nil
}

// channel type mapping between Discord's numeric types and the store enum

func channelTypeString(t discordgo.ChannelType) string {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return "text"
	case discordgo.ChannelTypeGuildVoice:
		return "voice"
	case discordgo.ChannelTypeGuildCategory:
		return "category"
	case discordgo.ChannelTypeGuildNews:
		return "news"
	case discordgo.ChannelTypeGuildStore:
		return "store"
	case discordgo.ChannelTypeGuildForum:
		return "forum"
	default:
		return "text"
	}
}

func channelTypeValue(t string) discordgo.ChannelType {
	switch t {
	case "voice":
		return discordgo.ChannelTypeGuildVoice
	case "category":
		return discordgo.ChannelTypeGuildCategory
	case "news":
		return discordgo.ChannelTypeGuildNews
	case "store":
		return discordgo.ChannelTypeGuildStore
	case "forum":
		return discordgo.ChannelTypeGuildForum
	default:
		return discordgo.ChannelTypeGuildText
	}
}

func mapChannel(ch *discordgo.Channel) RemoteChannel {
	perms := make([]RemotePermission, 0, len(ch.PermissionOverwrites))
	for _, ov := range ch.PermissionOverwrites {
		if ov.Type != discordgo.PermissionOverwriteTypeRole {
			continue
		}
		perms = append(perms, RemotePermission{
			RoleID: ov.ID,
			Allow:  strconv.FormatInt(ov.Allow, 10),
			Deny:   strconv.FormatInt(ov.Deny, 10),
		})
	}

	return RemoteChannel{
		ID:               ch.ID,
		Name:             ch.Name,
		Type:             channelTypeString(ch.Type),
		Position:         ch.Position,
		ParentID:         ch.ParentID,
		Topic:            ch.Topic,
		NSFW:             ch.NSFW,
		RateLimitPerUser: ch.RateLimitPerUser,
		Bitrate:          ch.Bitrate,
		UserLimit:        ch.UserLimit,
		Permissions:      perms,
	}
}

func mapRole(r *discordgo.Role) RemoteRole {
	return RemoteRole{
		ID:          r.ID,
		Name:        r.Name,
		Color:       fmt.Sprintf("%06x", r.Color),
		Hoist:       r.Hoist,
		Position:    r.Position,
		Permissions: strconv.FormatInt(r.Permissions, 10),
		Mentionable: r.Mentionable,
		Managed:     r.Managed,
	}
}

// GetGuildChannels returns the live channel list for a guild
func (c *Client) GetGuildChannels(ctx context.Context, guildID string) ([]RemoteChannel, error) {
	channels, err := c.Session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]RemoteChannel, 0, len(channels))
	for _, ch := range channels {
		out = append(out, mapChannel(ch))
	}
	return out, nil
}

// CreateGuildChannel creates a channel and returns the canonical object
func (c *Client) CreateGuildChannel(ctx context.Context, guildID string, params ChannelParams) (*RemoteChannel, error) {
	data := discordgo.GuildChannelCreateData{
		Name:             params.Name,
		Type:             channelTypeValue(params.Type),
		Topic:            params.Topic,
		Bitrate:          params.Bitrate,
		UserLimit:        params.UserLimit,
		RateLimitPerUser: params.RateLimitPerUser,
		Position:         params.Position,
		ParentID:         params.ParentID,
		NSFW:             params.NSFW,
	}

	ch, err := c.Session.GuildChannelCreateComplex(guildID, data,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(params.Reason))
	if err != nil {
		return nil, err
	}
	remote := mapChannel(ch)
	return &remote, nil
}

// UpdateGuildChannel edits a channel and returns the canonical object
func (c *Client) UpdateGuildChannel(ctx context.Context, guildID, channelID string, params ChannelParams) (*RemoteChannel, error) {
	edit := &discordgo.ChannelEdit{
		Name:             params.Name,
		Topic:            params.Topic,
		NSFW:             &params.NSFW,
		Position:         &params.Position,
		Bitrate:          params.Bitrate,
		UserLimit:        params.UserLimit,
		RateLimitPerUser: &params.RateLimitPerUser,
		ParentID:         params.ParentID,
	}

	ch, err := c.Session.ChannelEditComplex(channelID, edit,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(params.Reason))
	if err != nil {
		return nil, err
	}
	remote := mapChannel(ch)
	return &remote, nil
}

// DeleteGuildChannel deletes a channel
func (c *Client) DeleteGuildChannel(ctx context.Context, guildID, channelID, reason string) error {
	_, err := c.Session.ChannelDelete(channelID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	return err
}

// UpdateChannelPermissions sets a role permission overwrite on a channel
func (c *Client) UpdateChannelPermissions(ctx context.Context, guildID, channelID, roleID string, allow, deny int64) error {
	return c.Session.ChannelPermissionSet(channelID, roleID,
		discordgo.PermissionOverwriteTypeRole, allow, deny, discordgo.WithContext(ctx))
}

// GetGuildRoles returns the live role list for a guild
func (c *Client) GetGuildRoles(ctx context.Context, guildID string) ([]RemoteRole, error) {
	roles, err := c.Session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]RemoteRole, 0, len(roles))
	for _, r := range roles {
		out = append(out, mapRole(r))
	}
	return out, nil
}

// CreateGuildRole creates a role and returns the canonical object
func (c *Client) CreateGuildRole(ctx context.Context, guildID string, params RoleParams) (*RemoteRole, error) {
	data := &discordgo.RoleParams{
		Name:        params.Name,
		Color:       &params.Color,
		Hoist:       &params.Hoist,
		Permissions: &params.Permissions,
		Mentionable: &params.Mentionable,
	}

	role, err := c.Session.GuildRoleCreate(guildID, data,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(params.Reason))
	if err != nil {
		return nil, err
	}
	remote := mapRole(role)
	return &remote, nil
}

// UpdateGuildRole edits a role and returns the canonical object
func (c *Client) UpdateGuildRole(ctx context.Context, guildID, roleID string, params RoleParams) (*RemoteRole, error) {
	data := &discordgo.RoleParams{
		Name:        params.Name,
		Color:       &params.Color,
		Hoist:       &params.Hoist,
		Permissions: &params.Permissions,
		Mentionable: &params.Mentionable,
	}

	role, err := c.Session.GuildRoleEdit(guildID, roleID, data,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(params.Reason))
	if err != nil {
		return nil, err
	}
	remote := mapRole(role)
	return &remote, nil
}

// DeleteGuildRole deletes a role
func (c *Client) DeleteGuildRole(ctx context.Context, guildID, roleID string) error {
	return c.Session.GuildRoleDelete(guildID, roleID, discordgo.WithContext(ctx))
}

// GetGuildRoleMembers returns every member holding a role. Discord has no
// direct endpoint for this, so the member list is walked in pages of 1000.
func (c *Client) GetGuildRoleMembers(ctx context.Context, guildID, roleID string) ([]RemoteMember, error) {
	var out []RemoteMember
	after := ""

	for {
		members, err := c.Session.GuildMembers(guildID, after, 1000, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			break
		}

		for _, m := range members {
			if m.User == nil {
				continue
			}
			for _, r := range m.Roles {
				if r == roleID {
					out = append(out, RemoteMember{
						ID:            m.User.ID,
						Username:      m.User.Username,
						Discriminator: m.User.Discriminator,
						Avatar:        m.User.Avatar,
						JoinedAt:      m.JoinedAt,
					})
					break
				}
			}
		}

		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}

	return out, nil
}

// BanGuildMember bans a member via the Discord API
func (c *Client) BanGuildMember(ctx context.Context, guildID, userID string, params BanParams) error {
	return c.Session.GuildBanCreateWithReason(guildID, userID, params.Reason,
		params.DeleteMessageDays, discordgo.WithContext(ctx))
}

// UnbanGuildMember lifts a ban via the Discord API
func (c *Client) UnbanGuildMember(ctx context.Context, guildID, userID string) error {
	return c.Session.GuildBanDelete(guildID, userID, discordgo.WithContext(ctx))
}
