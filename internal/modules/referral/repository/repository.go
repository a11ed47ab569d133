package repository

import (
	"context"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralRepository interface {
	Create(ctx context.Context, code *entity.ReferralCode) error
	CreateBatch(ctx context.Context, codes []entity.ReferralCode) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]entity.ReferralCode, error)
	CountUnusedByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
	FindByCode(ctx context.Context, code string) (*entity.ReferralCode, error)
	// Redeem runs the whole redemption in one transaction: flip the code to
	// used, verify the applicant, and log the zero-point discovery activity.
	// The used flag transition is guarded in SQL so two racing redeemers
	// cannot both consume the same code.
	Redeem(ctx context.Context, code *entity.ReferralCode, applicant *entity.User, activity *entity.Activity) error
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, code *entity.ReferralCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *referralRepository) CreateBatch(ctx context.Context, codes []entity.ReferralCode) error {
	if len(codes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&codes).Error
}

func (r *referralRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]entity.ReferralCode, error) {
	var codes []entity.ReferralCode
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

func (r *referralRepository) CountUnusedByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ReferralCode{}).
		Where("creator_id = ? AND used = ?", creatorID, false).
		Count(&count).Error
	return count, err
}

func (r *referralRepository) FindByCode(ctx context.Context, code string) (*entity.ReferralCode, error) {
	var rc entity.ReferralCode
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("LOWER(code) = LOWER(?)", code).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *referralRepository) Redeem(ctx context.Context, code *entity.ReferralCode, applicant *entity.User, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.ReferralCode{}).
			Where("id = ? AND used = ?", code.ID, false).
			Updates(map[string]interface{}{
				"used":       true,
				"used_by_id": applicant.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.Conflict("referral code already used")
		}

		if err := tx.Model(&entity.User{}).
			Where("id = ?", applicant.ID).
			Updates(map[string]interface{}{
				"artist_status":  entity.StatusVerifiedArtist,
				"referred_by_id": code.CreatorID,
			}).Error; err != nil {
			return err
		}

		if activity != nil {
			if err := activityRepo.RecordTx(tx, activity); err != nil {
				return err
			}
		}

		return nil
	})
}
