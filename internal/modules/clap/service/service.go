package clap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	clapDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/dto"
	clapRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/repository"
	notifService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/notification/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ClapService interface {
	Clap(ctx context.Context, req clapDto.ClapRequest) (*clapDto.ClapResponse, error)
	// HasClappedToday reports whether actor already clapped for target within
	// the current UTC day. Read-only, used by the artist profile view.
	HasClappedToday(ctx context.Context, actorFid, targetFid int64) (bool, error)
}

type clapService struct {
	repo                clapRepo.ClapRepository
	activityRepo        activityRepo.ActivityRepository
	userRepo            userRepo.UserRepository
	notificationService notifService.NotificationService
	redisClient         *redis.Client
}

func NewClapService(repo clapRepo.ClapRepository, activityRepository activityRepo.ActivityRepository, userRepository userRepo.UserRepository, notificationService notifService.NotificationService, redisClient *redis.Client) ClapService {
	return &clapService{
		repo:                repo,
		activityRepo:        activityRepository,
		userRepo:            userRepository,
		notificationService: notificationService,
		redisClient:         redisClient,
	}
}

func (s *clapService) Clap(ctx context.Context, req clapDto.ClapRequest) (*clapDto.ClapResponse, error) {
	if req.UserFid == req.TargetFid {
		return nil, apperror.BadRequest("you cannot clap for yourself")
	}

	actor, target, err := s.loadPair(ctx, req.UserFid, req.TargetFid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Fast path: same-day replays bounce off Redis before touching the DB.
	ok, err := checkAndSetClapGuard(ctx, s.redisClient, req.UserFid, req.TargetFid, now)
	if err != nil {
		// Redis being down must not block claps; the DB check still holds.
		log.Printf("clap guard unavailable: %v", err)
	} else if !ok {
		return nil, apperror.Conflict("already clapped for this artist today")
	}

	points := activity.PointValues[activity.TypeClapReaction]
	entry := &entity.Activity{
		UserID:       actor.ID,
		TargetUserID: &target.ID,
		ActivityType: activity.TypeClapReaction,
		Points:       points,
	}

	if err := s.repo.RecordClap(ctx, entry, now); err != nil {
		// The guard key must not outlive a failed workflow, otherwise a
		// retry after a transient error would be refused until midnight.
		if !errors.Is(err, apperror.ErrConflict) {
			clearClapGuard(ctx, s.redisClient, req.UserFid, req.TargetFid, now)
		}
		return nil, err
	}

	updated, err := s.userRepo.FindByFid(ctx, req.UserFid)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(actor, target)

	return &clapDto.ClapResponse{
		Success:        true,
		PointsEarned:   points,
		NewTotalPoints: updated.TotalPoints,
	}, nil
}

func (s *clapService) HasClappedToday(ctx context.Context, actorFid, targetFid int64) (bool, error) {
	actor, err := s.userRepo.FindByFid(ctx, actorFid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	target, err := s.userRepo.FindByFid(ctx, targetFid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	from, to := clapRepo.DayWindow(time.Now())
	count, err := s.activityRepo.CountClapsInWindow(ctx, actor.ID, target.ID, from, to)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// loadPair fetches actor and target in parallel; neither read depends on the
// other, so this is purely a latency win.
func (s *clapService) loadPair(ctx context.Context, actorFid, targetFid int64) (*entity.User, *entity.User, error) {
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

func (s *clapService) notifyAsync(actor, target *entity.User) {
	if s.notificationService == nil {
		return
	}
	go func() {
		notif := &entity.Notification{
			UserID:  target.ID,
			ActorID: actor.ID,
			Type:    entity.NotificationClap,
			Message: fmt.Sprintf("%s clapped for your work", actor.Username),
		}
		if err := s.notificationService.CreateNotification(context.Background(), notif); err != nil {
			log.Printf("failed to create clap notification: %v", err)
		}
	}()
}
