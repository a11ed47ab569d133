package repository

import (
	"context"
	"fmt"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	"gorm.io/gorm"
)

// Point columns a leaderboard may rank by. Callers must pass one of these;
// the column name is interpolated into SQL and is never user input.
const (
	ColumnTotalPoints   = "total_points"
	ColumnWeeklyPoints  = "weekly_points"
	ColumnMonthlyPoints = "monthly_points"
)

type LeaderboardRepository interface {
	// ListTop returns users with a positive value in the column, highest
	// first. Ties break by row order.
	ListTop(ctx context.Context, column string, limit, offset int) ([]entity.User, error)
	// Stats aggregates over all qualifying users: how many, and their
	// combined points.
	Stats(ctx context.Context, column string) (count int64, sum int64, err error)
	// RankOf counts users with strictly more points than the given value.
	RankOf(ctx context.Context, column string, points int) (int64, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) ListTop(ctx context.Context, column string, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("%s > 0", column)).
		Order(fmt.Sprintf("%s DESC", column)).
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *leaderboardRepository) Stats(ctx context.Context, column string) (int64, int64, error) {
	var out struct {
		Count int64
		Sum   int64
	}
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Select(fmt.Sprintf("COUNT(*) AS count, COALESCE(SUM(%s), 0) AS sum", column)).
		Where(fmt.Sprintf("%s > 0", column)).
		Scan(&out).Error
	return out.Count, out.Sum, err
}

func (r *leaderboardRepository) RankOf(ctx context.Context, column string, points int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where(fmt.Sprintf("%s > ?", column), points).
		Count(&count).Error
	return count, err
}
