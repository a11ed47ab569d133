package admin

import (
	"context"
	"errors"
	"log"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	adminDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/dto"
	adminRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/admin/repository"
	notifService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/service"
	referral "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/service"
	search "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"gorm.io/gorm"
)

// seedCodeCount is how many referral codes a freshly approved artist starts
// with.
const seedCodeCount = 3

type AdminService interface {
	ListPending(ctx context.Context) (*adminDto.ListPendingResponse, error)
	Decide(ctx context.Context, req adminDto.ApproveArtistRequest) (*adminDto.ApproveArtistResponse, error)
}

type adminService struct {
	repo                adminRepo.AdminRepository
	userRepo            userRepo.UserRepository
	referralService     referral.ReferralService
	searchService       search.SearchService
	notificationService notifService.NotificationService
}

func NewAdminService(
	repo adminRepo.AdminRepository,
	userRepository userRepo.UserRepository,
	referralService referral.ReferralService,
	searchService search.SearchService,
	notificationService notifService.NotificationService,
) AdminService {
	return &adminService{
		repo:                repo,
		userRepo:            userRepository,
		referralService:     referralService,
		searchService:       searchService,
		notificationService: notificationService,
	}
}

func (s *adminService) ListPending(ctx context.Context) (*adminDto.ListPendingResponse, error) {
	users, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	resp := &adminDto.ListPendingResponse{
		Success: true,
		Pending: make([]adminDto.PendingArtistEntry, 0, len(users)),
	}
	for _, u := range users {
		entry := adminDto.PendingArtistEntry{
			Fid:         u.Fid,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			AppliedAt:   u.UpdatedAt,
		}
		if u.PfpURL != nil {
			entry.PfpURL = *u.PfpURL
		}
		if u.VerificationNotes != nil {
			entry.VerificationNotes = *u.VerificationNotes
		}
		resp.Pending = append(resp.Pending, entry)
	}
	return resp, nil
}

func (s *adminService) Decide(ctx context.Context, req adminDto.ApproveArtistRequest) (*adminDto.ApproveArtistResponse, error) {
	target, err := s.userRepo.FindByFid(ctx, req.TargetFid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	status := entity.StatusSupporter
	if *req.Approved {
		status = entity.StatusVerifiedArtist
	}

	transitioned, err := s.repo.ResolvePending(ctx, target.ID, status, req.Notes)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return nil, apperror.NotFound("no pending application for this user")
	}

	if *req.Approved {
		target.ArtistStatus = entity.StatusVerifiedArtist
		if err := s.referralService.SeedCodes(ctx, target, seedCodeCount); err != nil {
			log.Printf("failed to seed referral codes for %s: %v", target.Username, err)
		}
		if err := s.searchService.IndexArtist(ctx, target); err != nil {
			log.Printf("failed to index approved artist %s: %v", target.Username, err)
		}
	}

	s.notifyAsync(target, *req.Approved)

	return &adminDto.ApproveArtistResponse{Success: true, Status: string(status)}, nil
}

func (s *adminService) notifyAsync(target *entity.User, approved bool) {
	if s.notificationService == nil {
		return
	}
	message := "your artist application was approved"
	if !approved {
		message = "your artist application was not approved"
	}
	go func() {
		notif := &entity.Notification{
			UserID:  target.ID,
			Type:    entity.NotificationVerification,
			Message: message,
		}
		if err := s.notificationService.CreateNotification(context.Background(), notif); err != nil {
			log.Printf("failed to create verification notification: %v", err)
		}
	}()
}
