package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	profileDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/profile/dto"
	search "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/storage"
	"gorm.io/gorm"
)

const (
	maxSocialLinks = 10
	maxLabelLength = 50
	avatarFolder   = "avatars"
)

type ProfileService interface {
	Edit(ctx context.Context, in profileDto.EditProfileInput) (*profileDto.EditProfileResponse, error)
}

type profileService struct {
	userRepo      userRepo.UserRepository
	imageStorage  storage.ImageStorage
	searchService search.SearchService
}

func NewProfileService(userRepository userRepo.UserRepository, imageStorage storage.ImageStorage, searchService search.SearchService) ProfileService {
	return &profileService{
		userRepo:      userRepository,
		imageStorage:  imageStorage,
		searchService: searchService,
	}
}

func (s *profileService) Edit(ctx context.Context, in profileDto.EditProfileInput) (*profileDto.EditProfileResponse, error) {
	user, err := s.userRepo.FindByFid(ctx, in.Fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	if in.LinksProvided {
		if err := validateLinks(in.SocialLinks); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(in.SocialLinks)
		if err != nil {
			return nil, err
		}
		user.SocialLinks = string(raw)
	}

	if in.ExtendedBio != nil {
		user.ExtendedBio = in.ExtendedBio
	}

	if in.Avatar != nil {
		oldURL := ""
		if user.PfpURL != nil {
			oldURL = *user.PfpURL
		}

		uploaded, err := s.imageStorage.UploadImage(ctx, in.Avatar, avatarFolder, in.AvatarName)
		if err != nil {
			return nil, fmt.Errorf("avatar upload failed: %w", err)
		}
		user.PfpURL = &uploaded

		if oldURL != "" {
			if err := s.imageStorage.DeleteImage(ctx, oldURL); err != nil {
				log.Printf("failed to delete previous avatar %s: %v", oldURL, err)
			}
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.IsVerifiedArtist() {
		if err := s.searchService.IndexArtist(ctx, user); err != nil {
			log.Printf("failed to re-index artist %s after profile edit: %v", user.Username, err)
		}
	}

	resp := &profileDto.EditProfileResponse{
		Success:     true,
		SocialLinks: []entity.SocialLink{},
	}
	if user.ExtendedBio != nil {
		resp.ExtendedBio = *user.ExtendedBio
	}
	if user.PfpURL != nil {
		resp.PfpURL = *user.PfpURL
	}
	if user.SocialLinks != "" {
		var links []entity.SocialLink
		if err := json.Unmarshal([]byte(user.SocialLinks), &links); err == nil {
			resp.SocialLinks = links
		}
	}
	return resp, nil
}

func validateLinks(links []entity.SocialLink) error {
	if len(links) > maxSocialLinks {
		return apperror.BadRequest(fmt.Sprintf("at most %d social links are allowed", maxSocialLinks))
	}

	for _, link := range links {
		label := strings.TrimSpace(link.Label)
		if label == "" {
			return apperror.BadRequest("social link label is required")
		}
		if len(label) > maxLabelLength {
			return apperror.BadRequest("social link label is too long")
		}

		parsed, err := url.Parse(strings.TrimSpace(link.URL))
		if err != nil || parsed.Host == "" {
			return apperror.BadRequest(fmt.Sprintf("invalid social link url: %s", link.URL))
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return apperror.BadRequest(fmt.Sprintf("social link url must be http or https: %s", link.URL))
		}
	}
	return nil
}
