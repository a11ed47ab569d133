package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	leaderboardDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/dto"
	leaderboardRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/repository"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	PeriodLifetime = "lifetime"
	PeriodWeekly   = "weekly"
	PeriodMonthly  = "monthly"
)

// periodColumns is the closed mapping from period selector to ranked column.
var periodColumns = map[string]string{
	PeriodLifetime: leaderboardRepo.ColumnTotalPoints,
	"all":          leaderboardRepo.ColumnTotalPoints,
	PeriodWeekly:   leaderboardRepo.ColumnWeeklyPoints,
	PeriodMonthly:  leaderboardRepo.ColumnMonthlyPoints,
}

type Query struct {
	Period         string
	CurrentUserFid int64
	Limit          int
	Offset         int
}

type LeaderboardService interface {
	Get(ctx context.Context, q Query) (*leaderboardDto.LeaderboardResponse, error)
}

type leaderboardService struct {
	repo        leaderboardRepo.LeaderboardRepository
	userRepo    userRepo.UserRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, userRepository userRepo.UserRepository, redisClient *redis.Client, cacheTTL time.Duration) LeaderboardService {
	return &leaderboardService{
		repo:        repo,
		userRepo:    userRepository,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *leaderboardService) Get(ctx context.Context, q Query) (*leaderboardDto.LeaderboardResponse, error) {
	if q.Period == "" {
		q.Period = PeriodLifetime
	}
	column, ok := periodColumns[q.Period]
	if !ok {
		return nil, apperror.BadRequest("period must be lifetime, weekly, or monthly")
	}

	// Anonymous pages are identical for every caller, so they ride a short
	// cache. Requests carrying a fid skip it: the personal rank has to be
	// computed fresh.
	cacheKey := ""
	if q.CurrentUserFid == 0 {
		cacheKey = fmt.Sprintf("leaderboard:%s:%d:%d", q.Period, q.Limit, q.Offset)
		if resp := s.readCache(ctx, cacheKey); resp != nil {
			return resp, nil
		}
	}

	users, err := s.repo.ListTop(ctx, column, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	count, sum, err := s.repo.Stats(ctx, column)
	if err != nil {
		return nil, err
	}

	resp := &leaderboardDto.LeaderboardResponse{
		Success: true,
		Period:  q.Period,
		Entries: make([]leaderboardDto.LeaderboardEntry, 0, len(users)),
		Stats: leaderboardDto.LeaderboardStats{
			TotalUsers:  count,
			TotalPoints: sum,
		},
	}
	if count > 0 {
		resp.Stats.AveragePoints = int64(math.Round(float64(sum) / float64(count)))
	}

	for i := range users {
		u := &users[i]
		entry := leaderboardDto.LeaderboardEntry{
			Position:     q.Offset + i + 1,
			Fid:          u.Fid,
			Username:     u.Username,
			DisplayName:  u.DisplayName,
			ArtistStatus: string(u.ArtistStatus),
			Points:       pointsFor(u, column),
		}
		if u.PfpURL != nil {
			entry.PfpURL = *u.PfpURL
		}
		resp.Entries = append(resp.Entries, entry)
	}

	if q.CurrentUserFid > 0 {
		rank, err := s.rankFor(ctx, q.CurrentUserFid, column)
		if err != nil {
			return nil, err
		}
		resp.CurrentUserRank = rank
	}

	if cacheKey != "" {
		s.writeCache(ctx, cacheKey, resp)
	}

	return resp, nil
}

func (s *leaderboardService) rankFor(ctx context.Context, fid int64, column string) (*int64, error) {
	user, err := s.userRepo.FindByFid(ctx, fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	higher, err := s.repo.RankOf(ctx, column, pointsFor(user, column))
	if err != nil {
		return nil, err
	}
	rank := higher + 1
	return &rank, nil
}

func (s *leaderboardService) readCache(ctx context.Context, key string) *leaderboardDto.LeaderboardResponse {
	if s.redisClient == nil {
		return nil
	}
	raw, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("leaderboard cache read failed: %v", err)
		}
		return nil
	}
	var resp leaderboardDto.LeaderboardResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *leaderboardService) writeCache(ctx context.Context, key string, resp *leaderboardDto.LeaderboardResponse) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		log.Printf("leaderboard cache write failed: %v", err)
	}
}

func pointsFor(u *entity.User, column string) int {
	switch column {
	case leaderboardRepo.ColumnWeeklyPoints:
		return u.WeeklyPoints
	case leaderboardRepo.ColumnMonthlyPoints:
		return u.MonthlyPoints
	default:
		return u.TotalPoints
	}
}
