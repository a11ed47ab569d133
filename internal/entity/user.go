package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtistStatus is the verification state of a user inside the artist workflow.
type ArtistStatus string

const (
	StatusSupporter      ArtistStatus = "supporter"
	StatusPendingArtist  ArtistStatus = "pending_artist"
	StatusVerifiedArtist ArtistStatus = "verified_artist"
)

// SocialLink is one validated {label, url} entry of a user's profile links.
// The set is persisted as a JSON blob in User.SocialLinks.
type SocialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Fid         int64     `gorm:"uniqueIndex;not null" json:"fid"`
	Username    string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	DisplayName string    `gorm:"size:150" json:"display_name"`
	PfpURL      *string   `gorm:"type:text" json:"pfp_url,omitempty"`
	Bio         *string   `gorm:"type:text" json:"bio,omitempty"`
	ExtendedBio *string   `gorm:"type:text" json:"extended_bio,omitempty"`
	SocialLinks string    `gorm:"type:text" json:"-"`

	ArtistStatus      ArtistStatus `gorm:"size:20;default:supporter;index" json:"artist_status"`
	VerificationNotes *string      `gorm:"type:text" json:"verification_notes,omitempty"`
	ReferredByID      *uuid.UUID   `gorm:"type:uuid" json:"referred_by_id,omitempty"`

	TotalPoints     int `gorm:"not null;default:0" json:"total_points"`
	WeeklyPoints    int `gorm:"not null;default:0" json:"weekly_points"`
	MonthlyPoints   int `gorm:"not null;default:0" json:"monthly_points"`
	SupportGiven    int `gorm:"not null;default:0" json:"support_given"`
	SupportReceived int `gorm:"not null;default:0" json:"support_received"`
	FollowerCount   int `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount  int `gorm:"not null;default:0" json:"following_count"`

	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsVerifiedArtist reports whether the user may mint referral codes.
func (u *User) IsVerifiedArtist() bool {
	return u.ArtistStatus == StatusVerifiedArtist
}
