package dto

import (
	"time"

	"github.com/google/uuid"
)

// RecordActivityRequest is the body of POST /activities.
type RecordActivityRequest struct {
	UserFid      int64          `json:"userFid" binding:"omitempty,gt=0"`
	ActivityType string         `json:"activityType" binding:"required"`
	TargetFid    *int64         `json:"targetFid" binding:"omitempty,gt=0"`
	CastHash     *string        `json:"castHash" binding:"omitempty,max=100"`
	Metadata     map[string]any `json:"metadata"`
}

type RecordActivityResponse struct {
	Success        bool      `json:"success"`
	ActivityID     uuid.UUID `json:"activityId"`
	PointsEarned   int       `json:"pointsEarned"`
	NewTotalPoints int       `json:"newTotalPoints"`
}

// TargetUserSummary is the projection of the counterpart user attached to a
// history entry.
type TargetUserSummary struct {
	Fid         int64   `json:"fid"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	PfpURL      *string `json:"pfp_url,omitempty"`
}

type ActivityEntry struct {
	ID           uuid.UUID          `json:"id"`
	ActivityType string             `json:"activity_type"`
	Points       int                `json:"points"`
	TargetUser   *TargetUserSummary `json:"target_user,omitempty"`
	CastHash     *string            `json:"cast_hash,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type ActivityHistoryResponse struct {
	Success    bool            `json:"success"`
	Activities []ActivityEntry `json:"activities"`
	Total      int64           `json:"total"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}
