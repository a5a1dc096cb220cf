package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Warning is a moderation strike issued to a user. Warnings are never hard
// deleted; clearing or expiry flips the active flag and records who/why.
type Warning struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID      string             `bson:"guildId" json:"guildId"`
	UserID       string             `bson:"userId" json:"userId"`
	ModeratorID  string             `bson:"moderatorId" json:"moderatorId"`
	Reason       string             `bson:"reason" json:"reason"`
	Active       bool               `bson:"active" json:"active"`
	ExpiresAt    *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	DeletedAt    *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	DeletedBy    string             `bson:"deletedBy,omitempty" json:"deletedBy,omitempty"`
	DeleteReason string             `bson:"deleteReason,omitempty" json:"deleteReason,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsExpired reports whether the warning's expiry has passed
func (w *Warning) IsExpired(now time.Time) bool {
	return w.ExpiresAt != nil && !w.ExpiresAt.After(now)
}
