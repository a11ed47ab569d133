package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	// Record appends the ledger row and applies the point accounting to the
	// user counters in a single transaction.
	Record(ctx context.Context, activity *entity.Activity) error
	HasCastActivity(ctx context.Context, userID uuid.UUID, activityType, castHash string, targetID *uuid.UUID) (bool, error)
	CountClapsInWindow(ctx context.Context, actorID, targetID uuid.UUID, from, to time.Time) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Activity, int64, error)
	CountReceivedByType(ctx context.Context, targetID uuid.UUID, activityType string) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByType(ctx context.Context, activityType string) (int64, error)
	SumPoints(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// ApplyPointAward credits the actor's running counters for one ledger entry:
// lifetime/weekly/monthly gain the point value, support given gains one. The
// arithmetic happens in SQL so concurrent awards cannot lose updates.
func ApplyPointAward(tx *gorm.DB, actorID uuid.UUID, points int) error {
	return tx.Model(&entity.User{}).
		Where("id = ?", actorID).
		UpdateColumns(map[string]interface{}{
			"total_points":   gorm.Expr("total_points + ?", points),
			"weekly_points":  gorm.Expr("weekly_points + ?", points),
			"monthly_points": gorm.Expr("monthly_points + ?", points),
			"support_given":  gorm.Expr("support_given + 1"),
		}).Error
}

// CreditSupportReceived bumps the counterpart's support-received counter.
// Applied whenever an activity names a target, regardless of point value.
func CreditSupportReceived(tx *gorm.DB, targetID uuid.UUID) error {
	return tx.Model(&entity.User{}).
		Where("id = ?", targetID).
		UpdateColumn("support_received", gorm.Expr("support_received + 1")).Error
}

// RecordTx runs the full point accounting inside the caller's transaction.
func RecordTx(tx *gorm.DB, activity *entity.Activity) error {
	if err := tx.Create(activity).Error; err != nil {
		return translateDuplicate(err)
	}

	if err := ApplyPointAward(tx, activity.UserID, activity.Points); err != nil {
		return err
	}

	if activity.TargetUserID != nil {
		if err := CreditSupportReceived(tx, *activity.TargetUserID); err != nil {
			return err
		}
	}

	return nil
}

func (r *activityRepository) Record(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return RecordTx(tx, activity)
	})
}

func (r *activityRepository) HasCastActivity(ctx context.Context, userID uuid.UUID, activityType, castHash string, targetID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Where("user_id = ? AND activity_type = ? AND cast_hash = ?", userID, activityType, castHash)

	if targetID != nil {
		query = query.Where("target_user_id = ?", *targetID)
	} else {
		query = query.Where("target_user_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *activityRepository) CountClapsInWindow(ctx context.Context, actorID, targetID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Where("user_id = ? AND target_user_id = ? AND activity_type = ? AND created_at >= ? AND created_at < ?",
			actorID, targetID, "CLAP_REACTION", from, to).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Activity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Preload("TargetUser").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&activities).Error
	return activities, total, err
}

func (r *activityRepository) CountReceivedByType(ctx context.Context, targetID uuid.UUID, activityType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Where("target_user_id = ? AND activity_type = ?", targetID, activityType).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) CountByType(ctx context.Context, activityType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Where("activity_type = ?", activityType).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) SumPoints(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.Activity{}).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error
	return sum, err
}

// translateDuplicate maps unique index violations onto the conflict sentinel
// so a dedup-keyed replay surfaces as 409 even when two requests race past
// the pre-insert existence check.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint") {
		return apperror.Conflict("activity already recorded for this reference")
	}
	return err
}
