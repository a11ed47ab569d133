package dto

import "github.com/Flexasaurusrex/art-claps-sub000/internal/entity"

// SignInRequest carries the profile payload from the third-party sign-in
// widget. Verification of the signature happens in the widget's backend; by
// the time this request arrives the fid is trusted.
type SignInRequest struct {
	Fid         int64   `json:"fid" binding:"required,gt=0"`
	Username    string  `json:"username" binding:"required,min=1,max=100"`
	DisplayName string  `json:"displayName" binding:"omitempty,max=150"`
	PfpURL      *string `json:"pfpUrl" binding:"omitempty,url"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
}

type SignInResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// UpsertUserRequest is the body of POST /user. The fid may come from the
// bearer token instead of the body.
type UpsertUserRequest struct {
	Fid         int64   `json:"fid" binding:"omitempty,gt=0"`
	Username    string  `json:"username" binding:"required,min=1,max=100"`
	DisplayName string  `json:"displayName" binding:"omitempty,max=150"`
	PfpURL      *string `json:"pfpUrl" binding:"omitempty,url"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *entity.User `json:"user"`
}
