package dto

import "time"

type PendingArtistEntry struct {
	Fid               int64     `json:"fid"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"displayName"`
	PfpURL            string    `json:"pfpUrl,omitempty"`
	VerificationNotes string    `json:"verificationNotes,omitempty"`
	AppliedAt         time.Time `json:"appliedAt"`
}

type ListPendingResponse struct {
	Success bool                 `json:"success"`
	Pending []PendingArtistEntry `json:"pending"`
}

type ApproveArtistRequest struct {
	TargetFid int64  `json:"targetFid" binding:"required"`
	Approved  *bool  `json:"approved" binding:"required"`
	Notes     string `json:"notes"`
}

type ApproveArtistResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
