package artist

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	artistDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/dto"
	artistRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/repository"
	clapRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/repository"
	clap "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/service"
	followRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/repository"
	referral "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/service"
	search "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ArtistService interface {
	Apply(ctx context.Context, req artistDto.ApplyRequest) (*artistDto.ApplyResponse, error)
	List(ctx context.Context, limit, offset int) (*artistDto.ListArtistsResponse, error)
	Profile(ctx context.Context, username string, currentUserFid int64) (*artistDto.ArtistProfileResponse, error)
}

type artistService struct {
	repo            artistRepo.ArtistRepository
	userRepo        userRepo.UserRepository
	activityRepo    activityRepo.ActivityRepository
	clapRepo        clapRepo.ClapRepository
	followRepo      followRepo.FollowRepository
	clapService     clap.ClapService
	referralService referral.ReferralService
	searchService   search.SearchService
}

func NewArtistService(
	repo artistRepo.ArtistRepository,
	userRepository userRepo.UserRepository,
	activityRepository activityRepo.ActivityRepository,
	clapRepository clapRepo.ClapRepository,
	followRepository followRepo.FollowRepository,
	clapService clap.ClapService,
	referralService referral.ReferralService,
	searchService search.SearchService,
) ArtistService {
	return &artistService{
		repo:            repo,
		userRepo:        userRepository,
		activityRepo:    activityRepository,
		clapRepo:        clapRepository,
		followRepo:      followRepository,
		clapService:     clapService,
		referralService: referralService,
		searchService:   searchService,
	}
}

func (s *artistService) Apply(ctx context.Context, req artistDto.ApplyRequest) (*artistDto.ApplyResponse, error) {
	applicant, err := s.userRepo.FindByFid(ctx, req.Fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	switch applicant.ArtistStatus {
	case entity.StatusVerifiedArtist:
		return nil, apperror.Conflict("you are already a verified artist")
	case entity.StatusPendingArtist:
		return nil, apperror.Conflict("your application is already pending review")
	}

	if req.ReferralCode != "" {
		referrer, err := s.referralService.Redeem(ctx, applicant, req.ReferralCode)
		if err != nil {
			return nil, err
		}

		applicant.ArtistStatus = entity.StatusVerifiedArtist
		if err := s.searchService.IndexArtist(ctx, applicant); err != nil {
			log.Printf("failed to index verified artist %s: %v", applicant.Username, err)
		}

		return &artistDto.ApplyResponse{
			Success:    true,
			Status:     string(entity.StatusVerifiedArtist),
			ReferredBy: referrer.Username,
		}, nil
	}

	applicant.ArtistStatus = entity.StatusPendingArtist
	if req.Message != "" {
		notes := req.Message
		applicant.VerificationNotes = &notes
	}
	if err := s.userRepo.Update(ctx, applicant); err != nil {
		return nil, err
	}

	return &artistDto.ApplyResponse{
		Success: true,
		Status:  string(entity.StatusPendingArtist),
	}, nil
}

func (s *artistService) List(ctx context.Context, limit, offset int) (*artistDto.ListArtistsResponse, error) {
	artists, total, err := s.repo.ListVerified(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &artistDto.ListArtistsResponse{
		Success: true,
		Artists: make([]artistDto.ArtistSummary, 0, len(artists)),
		Total:   total,
	}
	for i := range artists {
		resp.Artists = append(resp.Artists, summarize(&artists[i]))
	}
	return resp, nil
}

func (s *artistService) Profile(ctx context.Context, username string, currentUserFid int64) (*artistDto.ArtistProfileResponse, error) {
	target, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("artist not found")
		}
		return nil, err
	}
	if !target.IsVerifiedArtist() {
		return nil, apperror.NotFound("artist not found")
	}

	resp := &artistDto.ArtistProfileResponse{
		Success: true,
		Artist:  profileOf(target),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := s.activityRepo.CountReceivedByType(egCtx, target.ID, activity.TypeClapReaction)
		resp.ClapsReceived = n
		return err
	})
	eg.Go(func() error {
		n, err := s.clapRepo.CountConnectionsTo(egCtx, target.ID)
		resp.Connections = n
		return err
	})
	eg.Go(func() error {
		n, err := s.activityRepo.CountByUser(egCtx, target.ID)
		resp.Activities = n
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if currentUserFid > 0 && currentUserFid != target.Fid {
		s.fillRequesterFlags(ctx, currentUserFid, target, resp)
	}

	return resp, nil
}

// fillRequesterFlags is best effort: an unknown requester leaves both flags
// false rather than failing the profile read.
func (s *artistService) fillRequesterFlags(ctx context.Context, requesterFid int64, target *entity.User, resp *artistDto.ArtistProfileResponse) {
	requester, err := s.userRepo.FindByFid(ctx, requesterFid)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("failed to load requester %d for profile flags: %v", requesterFid, err)
		}
		return
	}

	clapped, err := s.clapService.HasClappedToday(ctx, requester.Fid, target.Fid)
	if err != nil {
		log.Printf("failed to check clapped-today for %d -> %d: %v", requester.Fid, target.Fid, err)
	} else {
		resp.ClappedToday = clapped
	}

	following, err := s.followRepo.IsFollowing(ctx, requester.ID, target.ID)
	if err != nil {
		log.Printf("failed to check follow status for %d -> %d: %v", requester.Fid, target.Fid, err)
	} else {
		resp.IsFollowing = following
	}
}

func summarize(u *entity.User) artistDto.ArtistSummary {
	s := artistDto.ArtistSummary{
		Fid:             u.Fid,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		WeeklyPoints:    u.WeeklyPoints,
		TotalPoints:     u.TotalPoints,
		FollowerCount:   u.FollowerCount,
		SupportReceived: u.SupportReceived,
	}
	if u.PfpURL != nil {
		s.PfpURL = *u.PfpURL
	}
	if u.Bio != nil {
		s.Bio = *u.Bio
	}
	return s
}

func profileOf(u *entity.User) artistDto.ArtistProfile {
	p := artistDto.ArtistProfile{
		Fid:             u.Fid,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		SocialLinks:     []entity.SocialLink{},
		ArtistStatus:    string(u.ArtistStatus),
		TotalPoints:     u.TotalPoints,
		WeeklyPoints:    u.WeeklyPoints,
		MonthlyPoints:   u.MonthlyPoints,
		SupportReceived: u.SupportReceived,
		FollowerCount:   u.FollowerCount,
		FollowingCount:  u.FollowingCount,
	}
	if u.PfpURL != nil {
		p.PfpURL = *u.PfpURL
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.ExtendedBio != nil {
		p.ExtendedBio = *u.ExtendedBio
	}
	if u.SocialLinks != "" {
		var links []entity.SocialLink
		if err := json.Unmarshal([]byte(u.SocialLinks), &links); err == nil {
			p.SocialLinks = links
		}
	}
	return p
}
