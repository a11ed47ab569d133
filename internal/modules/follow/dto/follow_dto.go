package dto

// FollowRequest toggles the follow edge for (userFid, targetFid).
type FollowRequest struct {
	UserFid   int64 `json:"userFid" binding:"omitempty,gt=0"`
	TargetFid int64 `json:"targetFid" binding:"required,gt=0"`
}

type FollowResponse struct {
	Success      bool   `json:"success"`
	IsFollowing  bool   `json:"isFollowing"`
	PointsEarned int    `json:"pointsEarned"`
	Action       string `json:"action"`
}

type FollowStatusResponse struct {
	Success     bool `json:"success"`
	IsFollowing bool `json:"isFollowing"`
}
