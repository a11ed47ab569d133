package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateCodeRequest struct {
	Fid int64 `json:"fid" binding:"omitempty,gt=0"`
}

type ReferralCodeEntry struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReferralListResponse struct {
	Success bool                `json:"success"`
	Codes   []ReferralCodeEntry `json:"codes"`
	Unused  int64               `json:"unused"`
}

type GenerateCodeResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
}
