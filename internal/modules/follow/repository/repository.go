package repository

import (
	"context"
	"strings"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowRepository interface {
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	// Follow inserts the edge, bumps the denormalized counters on both users
	// and applies the point award, all in one transaction.
	Follow(ctx context.Context, activity *entity.Activity, followerID, followingID uuid.UUID) error
	// Unfollow removes the edge and walks the counters back, floored at zero.
	// Points earned on follow stay earned.
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) Follow(ctx context.Context, activity *entity.Activity, followerID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := &entity.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Create(follow).Error; err != nil {
			if isDuplicate(err) {
				return apperror.Conflict("already following this artist")
			}
			return err
		}

		if err := tx.Model(&entity.User{}).
			Where("id = ?", followingID).
			UpdateColumn("follower_count", gorm.Expr("follower_count + 1")).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.User{}).
			Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}

		return activityRepo.RecordTx(tx, activity)
	})
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&entity.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("not following this artist")
		}

		// CASE expression keeps the floor-at-zero portable across dialects
		if err := tx.Model(&entity.User{}).
			Where("id = ?", followingID).
			UpdateColumn("follower_count",
				gorm.Expr("CASE WHEN follower_count > 0 THEN follower_count - 1 ELSE 0 END")).Error; err != nil {
			return err
		}

		return tx.Model(&entity.User{}).
			Where("id = ?", followerID).
			UpdateColumn("following_count",
				gorm.Expr("CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error
	})
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
