package entity

import (
	"time"

	"github.com/google/uuid"
)

// ArtistConnection is the directional interaction strength between an acting
// user and a target artist. (A,B) and (B,A) are distinct rows. Strength starts
// at 1.0 and gains 0.1 per repeat interaction, with no cap or decay.
type ArtistConnection struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	FromUserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair,priority:1" json:"from_user_id"`
	ToUserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair,priority:2" json:"to_user_id"`
	InteractionCount   int       `gorm:"not null;default:1" json:"interaction_count"`
	ConnectionStrength float64   `gorm:"not null;default:1.0" json:"connection_strength"`
	LastInteractionAt  time.Time `gorm:"not null" json:"last_interaction_at"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Follow is a boolean follow edge. Hard-deleted on unfollow.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair,priority:1" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair,priority:2;index" json:"following_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
