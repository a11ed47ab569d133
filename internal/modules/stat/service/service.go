package stat

import (
	"context"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	statDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/stat/dto"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"golang.org/x/sync/errgroup"
)

type StatService interface {
	Overview(ctx context.Context) (*statDto.StatsResponse, error)
}

type statService struct {
	userRepo     userRepo.UserRepository
	activityRepo activityRepo.ActivityRepository
}

func NewStatService(userRepository userRepo.UserRepository, activityRepository activityRepo.ActivityRepository) StatService {
	return &statService{userRepo: userRepository, activityRepo: activityRepository}
}

func (s *statService) Overview(ctx context.Context) (*statDto.StatsResponse, error) {
	resp := &statDto.StatsResponse{Success: true}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := s.userRepo.Count(egCtx)
		resp.TotalUsers = n
		return err
	})
	eg.Go(func() error {
		n, err := s.userRepo.CountByStatus(egCtx, entity.StatusVerifiedArtist)
		resp.TotalArtists = n
		return err
	})
	eg.Go(func() error {
		n, err := s.userRepo.CountByStatus(egCtx, entity.StatusPendingArtist)
		resp.PendingArtists = n
		return err
	})
	eg.Go(func() error {
		n, err := s.activityRepo.CountByType(egCtx, activity.TypeClapReaction)
		resp.TotalClaps = n
		return err
	})
	eg.Go(func() error {
		n, err := s.activityRepo.SumPoints(egCtx)
		resp.TotalPoints = n
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}
