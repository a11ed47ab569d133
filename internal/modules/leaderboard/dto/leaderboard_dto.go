package dto

type LeaderboardEntry struct {
	Position     int    `json:"position"`
	Fid          int64  `json:"fid"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	PfpURL       string `json:"pfpUrl,omitempty"`
	ArtistStatus string `json:"artistStatus"`
	Points       int    `json:"points"`
}

type LeaderboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalPoints   int64 `json:"totalPoints"`
	AveragePoints int64 `json:"averagePoints"`
}

type LeaderboardResponse struct {
	Success         bool               `json:"success"`
	Period          string             `json:"period"`
	Entries         []LeaderboardEntry `json:"entries"`
	Stats           LeaderboardStats   `json:"stats"`
	CurrentUserRank *int64             `json:"currentUserRank,omitempty"`
}
