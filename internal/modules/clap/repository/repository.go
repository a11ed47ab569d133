package repository

import (
	"context"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClapRepository interface {
	// RecordClap runs the whole clap workflow in one transaction: the
	// same-UTC-day duplicate check, the ledger append with counter credits,
	// and the artist connection upsert.
	RecordClap(ctx context.Context, activity *entity.Activity, now time.Time) error
	GetConnection(ctx context.Context, fromID, toID uuid.UUID) (*entity.ArtistConnection, error)
	CountConnectionsTo(ctx context.Context, toID uuid.UUID) (int64, error)
}

type clapRepository struct {
	db *gorm.DB
}

func NewClapRepository(db *gorm.DB) ClapRepository {
	return &clapRepository{db: db}
}

// DayWindow returns the [00:00, next 00:00) UTC window containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (r *clapRepository) RecordClap(ctx context.Context, activity *entity.Activity, now time.Time) error {
	from, to := DayWindow(now)
	// The injected clock stamps the row too, so the window check and the
	// stored rows always agree on which day a clap landed in.
	activity.CreatedAt = now.UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Activity{}).
			Where("user_id = ? AND target_user_id = ? AND activity_type = ? AND created_at >= ? AND created_at < ?",
				activity.UserID, *activity.TargetUserID, activity.ActivityType, from, to).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("already clapped for this artist today")
		}

		if err := activityRepo.RecordTx(tx, activity); err != nil {
			return err
		}

		return upsertConnection(tx, activity.UserID, *activity.TargetUserID, now)
	})
}

// upsertConnection creates the pair row at count=1/strength=1.0 or bumps an
// existing row by one interaction and 0.1 strength.
func upsertConnection(tx *gorm.DB, fromID, toID uuid.UUID, now time.Time) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"interaction_count":   gorm.Expr("interaction_count + 1"),
			"connection_strength": gorm.Expr("connection_strength + 0.1"),
			"last_interaction_at": now,
			"updated_at":          now,
		}),
	}).Create(&entity.ArtistConnection{
		FromUserID:         fromID,
		ToUserID:           toID,
		InteractionCount:   1,
		ConnectionStrength: 1.0,
		LastInteractionAt:  now,
	}).Error
}

func (r *clapRepository) GetConnection(ctx context.Context, fromID, toID uuid.UUID) (*entity.ArtistConnection, error) {
	var conn entity.ArtistConnection
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *clapRepository) CountConnectionsTo(ctx context.Context, toID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ArtistConnection{}).
		Where("to_user_id = ?", toID).
		Count(&count).Error
	return count, err
}
