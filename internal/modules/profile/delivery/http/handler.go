package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	profileDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/profile/dto"
	profile "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/profile/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

type ProfileHandler struct {
	service profile.ProfileService
}

func NewProfileHandler(service profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// EditProfile accepts a multipart form with fields fid, extendedBio,
// socialLinks (a JSON array of {label, url}) and an optional avatar file.
func (h *ProfileHandler) EditProfile(c *gin.Context) {
	bodyFid, _ := strconv.ParseInt(c.PostForm("fid"), 10, 64)
	fid := response.ActingFid(c, bodyFid)
	if fid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fid is required"})
		return
	}

	in := profileDto.EditProfileInput{Fid: fid}

	if bio, ok := c.GetPostForm("extendedBio"); ok {
		in.ExtendedBio = &bio
	}

	if raw, ok := c.GetPostForm("socialLinks"); ok {
		var links []entity.SocialLink
		if err := json.Unmarshal([]byte(raw), &links); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "socialLinks must be a JSON array of {label, url}"})
			return
		}
		in.SocialLinks = links
		in.LinksProvided = true
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil {
		if fileHeader.Size > maxAvatarSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is too large"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar file"})
			return
		}
		defer file.Close()
		in.Avatar = file
		in.AvatarName = fileHeader.Filename
	}

	resp, err := h.service.Edit(c.Request.Context(), in)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
