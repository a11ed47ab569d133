package follow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	followDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/dto"
	followRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/repository"
	notifService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	actionFollowed   = "followed"
	actionUnfollowed = "unfollowed"
)

type FollowService interface {
	Toggle(ctx context.Context, req followDto.FollowRequest) (*followDto.FollowResponse, error)
	Status(ctx context.Context, userFid, targetFid int64) (*followDto.FollowStatusResponse, error)
}

type followService struct {
	repo                followRepo.FollowRepository
	userRepo            userRepo.UserRepository
	notificationService notifService.NotificationService
}

func NewFollowService(repo followRepo.FollowRepository, userRepository userRepo.UserRepository, notificationService notifService.NotificationService) FollowService {
	return &followService{
		repo:                repo,
		userRepo:            userRepository,
		notificationService: notificationService,
	}
}

func (s *followService) Toggle(ctx context.Context, req followDto.FollowRequest) (*followDto.FollowResponse, error) {
	if req.UserFid == req.TargetFid {
		return nil, apperror.BadRequest("you cannot follow yourself")
	}

	actor, target, err := s.loadPair(ctx, req.UserFid, req.TargetFid)
	if err != nil {
		return nil, err
	}

	following, err := s.repo.IsFollowing(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := s.repo.Unfollow(ctx, actor.ID, target.ID); err != nil {
			return nil, err
		}
		return &followDto.FollowResponse{
			Success:      true,
			IsFollowing:  false,
			PointsEarned: 0,
			Action:       actionUnfollowed,
		}, nil
	}

	points := activity.PointValues[activity.TypeFollowNewArtist]
	entry := &entity.Activity{
		UserID:       actor.ID,
		TargetUserID: &target.ID,
		ActivityType: activity.TypeFollowNewArtist,
		Points:       points,
	}

	if err := s.repo.Follow(ctx, entry, actor.ID, target.ID); err != nil {
		return nil, err
	}

	s.notifyAsync(actor, target)

	return &followDto.FollowResponse{
		Success:      true,
		IsFollowing:  true,
		PointsEarned: points,
		Action:       actionFollowed,
	}, nil
}

func (s *followService) Status(ctx context.Context, userFid, targetFid int64) (*followDto.FollowStatusResponse, error) {
	actor, target, err := s.loadPair(ctx, userFid, targetFid)
	if err != nil {
		return nil, err
	}

	following, err := s.repo.IsFollowing(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, err
	}

	return &followDto.FollowStatusResponse{Success: true, IsFollowing: following}, nil
}

func (s *followService) loadPair(ctx context.Context, actorFid, targetFid int64) (*entity.User, *entity.User, error) {
	var actor, target *entity.User

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		u, err := s.userRepo.FindByFid(egCtx, actorFid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user not found")
			}
			return err
		}
		actor = u
		return nil
	})
	eg.Go(func() error {
		u, err := s.userRepo.FindByFid(egCtx, targetFid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("target artist not found")
			}
			return err
		}
		target = u
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

func (s *followService) notifyAsync(actor, target *entity.User) {
	if s.notificationService == nil {
		return
	}
	go func() {
		notif := &entity.Notification{
			UserID:  target.ID,
			ActorID: actor.ID,
			Type:    entity.NotificationFollow,
			Message: fmt.Sprintf("%s started following you", actor.Username),
		}
		if err := s.notificationService.CreateNotification(context.Background(), notif); err != nil {
			log.Printf("failed to create follow notification: %v", err)
		}
	}()
}
