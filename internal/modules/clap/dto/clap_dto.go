package dto

// ClapRequest is the body of POST /clap. Both users are addressed by their
// external Farcaster ids.
type ClapRequest struct {
	UserFid   int64 `json:"userFid" binding:"omitempty,gt=0"`
	TargetFid int64 `json:"targetFid" binding:"required,gt=0"`
}

type ClapResponse struct {
	Success        bool `json:"success"`
	PointsEarned   int  `json:"pointsEarned"`
	NewTotalPoints int  `json:"newTotalPoints"`
}
