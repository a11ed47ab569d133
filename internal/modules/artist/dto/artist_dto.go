package dto

import "github.com/Flexasaurusrex/art-claps-sub000/internal/entity"

type ApplyRequest struct {
	Fid          int64  `json:"fid" binding:"omitempty,gt=0"`
	Message      string `json:"message"`
	ReferralCode string `json:"referralCode"`
}

type ApplyResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	// ReferredBy carries the referrer's username when a code was redeemed.
	ReferredBy string `json:"referredBy,omitempty"`
}

type ArtistSummary struct {
	Fid             int64  `json:"fid"`
	Username        string `json:"username"`
	DisplayName     string `json:"displayName"`
	PfpURL          string `json:"pfpUrl,omitempty"`
	Bio             string `json:"bio,omitempty"`
	WeeklyPoints    int    `json:"weeklyPoints"`
	TotalPoints     int    `json:"totalPoints"`
	FollowerCount   int    `json:"followerCount"`
	SupportReceived int    `json:"supportReceived"`
}

type ListArtistsResponse struct {
	Success bool            `json:"success"`
	Artists []ArtistSummary `json:"artists"`
	Total   int64           `json:"total"`
}

type ArtistProfile struct {
	Fid             int64               `json:"fid"`
	Username        string              `json:"username"`
	DisplayName     string              `json:"displayName"`
	PfpURL          string              `json:"pfpUrl,omitempty"`
	Bio             string              `json:"bio,omitempty"`
	ExtendedBio     string              `json:"extendedBio,omitempty"`
	SocialLinks     []entity.SocialLink `json:"socialLinks"`
	ArtistStatus    string              `json:"artistStatus"`
	TotalPoints     int                 `json:"totalPoints"`
	WeeklyPoints    int                 `json:"weeklyPoints"`
	MonthlyPoints   int                 `json:"monthlyPoints"`
	SupportReceived int                 `json:"supportReceived"`
	FollowerCount   int                 `json:"followerCount"`
	FollowingCount  int                 `json:"followingCount"`
}

type ArtistProfileResponse struct {
	Success       bool          `json:"success"`
	Artist        ArtistProfile `json:"artist"`
	ClapsReceived int64         `json:"clapsReceived"`
	Connections   int64         `json:"connections"`
	Activities    int64         `json:"activities"`
	ClappedToday  bool          `json:"clappedToday"`
	IsFollowing   bool          `json:"isFollowing"`
}
