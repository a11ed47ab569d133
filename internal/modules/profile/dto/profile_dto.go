package dto

import (
	"io"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
)

// EditProfileInput is assembled by the handler from the multipart form.
type EditProfileInput struct {
	Fid         int64
	ExtendedBio *string
	SocialLinks []entity.SocialLink
	// LinksProvided distinguishes "clear the links" from "leave them alone".
	LinksProvided bool
	Avatar        io.Reader
	AvatarName    string
}

type EditProfileResponse struct {
	Success     bool                `json:"success"`
	ExtendedBio string              `json:"extendedBio,omitempty"`
	SocialLinks []entity.SocialLink `json:"socialLinks"`
	PfpURL      string              `json:"pfpUrl,omitempty"`
}
