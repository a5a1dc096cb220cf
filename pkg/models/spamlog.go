package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DetectionType enumerates automated spam/raid detection categories
type DetectionType string

const (
	DetectMessageSpam    DetectionType = "messageSpam"
	DetectMentionSpam    DetectionType = "mentionSpam"
	DetectEmojiSpam      DetectionType = "emojiSpam"
	DetectInviteSpam     DetectionType = "inviteSpam"
	DetectLinkSpam       DetectionType = "linkSpam"
	DetectDuplicateSpam  DetectionType = "duplicateSpam"
	DetectCapsSpam       DetectionType = "capsSpam"
	DetectBannedWord     DetectionType = "bannedWord"
	DetectRaidAttempt    DetectionType = "raidAttempt"
	DetectSuspiciousJoin DetectionType = "suspiciousJoin"
	DetectOther          DetectionType = "other"
)

// SpamLog is an append-only record of an automated detection event.
// Documents expire 7 days after createdAt via a TTL index.
type SpamLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID        string             `bson:"guildId" json:"guildId"`
	UserID         string             `bson:"userId" json:"userId"`
	ChannelID      string             `bson:"channelId" json:"channelId"`
	MessageContent string             `bson:"messageContent,omitempty" json:"messageContent,omitempty"`
	DetectionType  DetectionType      `bson:"detectionType" json:"detectionType"`
	ActionTaken    Punishment         `bson:"actionTaken" json:"actionTaken"`
	Details        map[string]any     `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// SpamLogTTL is the retention for spam log documents
const SpamLogTTL = 7 * 24 * time.Hour

// FormatDetails projects the free-form details payload down to the fields
// relevant for the detection type
func (s *SpamLog) FormatDetails() map[string]any {
	details := s.Details
	if details == nil {
		details = map[string]any{}
	}
	switch s.DetectionType {
	case DetectMessageSpam:
		return pick(details, "messageCount", "timeWindow", "threshold")
	case DetectMentionSpam:
		return pick(details, "mentionCount", "threshold", "mentionedUsers")
	case DetectEmojiSpam:
		return pick(details, "emojiCount", "threshold", "emojis")
	case DetectInviteSpam, DetectLinkSpam:
		return pick(details, "linkCount", "links")
	case DetectDuplicateSpam:
		return pick(details, "duplicateCount", "originalMessage")
	case DetectCapsSpam:
		return pick(details, "capsPercentage", "threshold")
	case DetectBannedWord:
		return pick(details, "word", "matchType")
	case DetectRaidAttempt, DetectSuspiciousJoin:
		return pick(details, "joinCount", "timeWindow", "accountAge")
	default:
		return details
	}
}
