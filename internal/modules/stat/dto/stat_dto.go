package dto

type StatsResponse struct {
	Success        bool  `json:"success"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalArtists   int64 `json:"totalArtists"`
	PendingArtists int64 `json:"pendingArtists"`
	TotalClaps     int64 `json:"totalClaps"`
	TotalPoints    int64 `json:"totalPoints"`
}
