package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionType enumerates auditable administrative and moderation actions
type ActionType string

const (
	ActionMemberBan     ActionType = "memberBan"
	ActionMemberUnban   ActionType = "memberUnban"
	ActionMemberKick    ActionType = "memberKick"
	ActionMemberWarn    ActionType = "memberWarn"
	ActionMemberMute    ActionType = "memberMute"
	ActionMemberUnmute  ActionType = "memberUnmute"
	ActionMemberLeave   ActionType = "member_leave"
	ActionMessagePurge  ActionType = "messagePurge"
	ActionMessagePin    ActionType = "messagePin"
	ActionMessageUnpin  ActionType = "messageUnpin"
	ActionChannelCreate ActionType = "channelCreate"
	ActionChannelUpdate ActionType = "channelUpdate"
	ActionChannelDelete ActionType = "channelDelete"
	ActionChannelPerms  ActionType = "channelPermissionUpdate"
	ActionRoleCreate    ActionType = "roleCreate"
	ActionRoleUpdate    ActionType = "roleUpdate"
	ActionRoleDelete    ActionType = "roleDelete"
	ActionRoleAssign    ActionType = "roleAssign"
	ActionRoleRemove    ActionType = "roleRemove"
	ActionSettingUpdate ActionType = "settingUpdate"
	ActionAutomod       ActionType = "automodAction"
	ActionSpamDetection ActionType = "spamDetection"
	ActionRaidDetection ActionType = "raidDetection"
	ActionCommand       ActionType = "command"

	// Short action names written by the dashboard moderation endpoints.
	// The frontend filters on these directly.
	ActionWarn          ActionType = "warn"
	ActionMute          ActionType = "mute"
	ActionKick          ActionType = "kick"
	ActionBan           ActionType = "ban"
	ActionUnban         ActionType = "unban"
	ActionClearWarnings ActionType = "clearWarnings"
)

// AuditLog is an append-only record of an administrative action. Documents
// expire 30 days after createdAt via a TTL index.
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID    string             `bson:"guildId" json:"guildId"`
	ActionType ActionType         `bson:"actionType" json:"actionType"`
	UserID     string             `bson:"userId" json:"userId"`
	TargetID   string             `bson:"targetId,omitempty" json:"targetId,omitempty"`
	Reason     string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Details    map[string]any     `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// AuditLogTTL is the retention for audit log documents
const AuditLogTTL = 30 * 24 * time.Hour

func pick(details map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := details[k]; ok {
			out[k] = v
		}
	}
	return out
}

// FormatDetails projects the free-form details payload down to the fields
// relevant for the entry's action type
func (a *AuditLog) FormatDetails() map[string]any {
	details := a.Details
	if details == nil {
		details = map[string]any{}
	}
	switch a.ActionType {
	case ActionMemberBan, ActionMemberUnban, ActionMemberKick,
		ActionMemberWarn, ActionMemberMute, ActionMemberUnmute:
		return pick(details, "user", "duration", "previousWarnings")
	case ActionMessagePurge:
		return pick(details, "channel", "count", "filter")
	case ActionChannelCreate, ActionChannelUpdate, ActionChannelDelete:
		return pick(details, "name", "type", "category", "permissions")
	case ActionRoleCreate, ActionRoleUpdate, ActionRoleDelete:
		return pick(details, "name", "color", "permissions", "position")
	case ActionSettingUpdate:
		return pick(details, "setting", "oldValue", "newValue")
	case ActionAutomod, ActionSpamDetection, ActionRaidDetection:
		return pick(details, "trigger", "action", "content")
	default:
		return details
	}
}
