package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is one immutable ledger entry for a point-earning (or point-neutral)
// action. When a cast hash is present, the same actor cannot earn twice for the
// same external reference: idx_activity_dedup covers rows that name a target,
// and because NULL target ids compare distinct in a unique index, the partial
// idx_activity_cast_dedup covers the targetless rows. Rows with a NULL cast
// hash never collide.
type Activity struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_user_date,priority:1;uniqueIndex:idx_activity_dedup,priority:1;uniqueIndex:idx_activity_cast_dedup,priority:1" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	ActivityType string     `gorm:"size:50;not null;uniqueIndex:idx_activity_dedup,priority:2;uniqueIndex:idx_activity_cast_dedup,priority:2" json:"activity_type"`
	Points       int        `gorm:"not null" json:"points"`
	TargetUserID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_activity_dedup,priority:4;index" json:"target_user_id,omitempty"`
	TargetUser   *User      `gorm:"foreignKey:TargetUserID" json:"-"`
	CastHash     *string    `gorm:"size:100;uniqueIndex:idx_activity_dedup,priority:3,where:cast_hash IS NOT NULL;uniqueIndex:idx_activity_cast_dedup,priority:3,where:target_user_id IS NULL AND cast_hash IS NOT NULL" json:"cast_hash,omitempty"`
	Metadata     string     `gorm:"type:text" json:"metadata,omitempty"`
	Processed    bool       `gorm:"not null;default:false" json:"processed"`
	CreatedAt    time.Time  `gorm:"index:idx_activity_user_date,priority:2;index" json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
