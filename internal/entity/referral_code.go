package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralCode is a single-use token minted by a verified artist (or admin).
// Codes are stored uppercase; uniqueness checks run case-insensitively.
type ReferralCode struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	CreatorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator   User       `gorm:"foreignKey:CreatorID" json:"-"`
	Used      bool       `gorm:"not null;default:false" json:"used"`
	UsedByID  *uuid.UUID `gorm:"type:uuid" json:"used_by_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ReferralCode) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
