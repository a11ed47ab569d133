package repository

import (
	"context"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	ListPending(ctx context.Context) ([]entity.User, error)
	// ResolvePending moves a user out of pending_artist. The status guard is
	// part of the UPDATE so a decision applies at most once; the boolean
	// reports whether a pending row was actually transitioned.
	ResolvePending(ctx context.Context, userID uuid.UUID, status entity.ArtistStatus, notes string) (bool, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ListPending(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("artist_status = ?", entity.StatusPendingArtist).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *adminRepository) ResolvePending(ctx context.Context, userID uuid.UUID, status entity.ArtistStatus, notes string) (bool, error) {
	updates := map[string]interface{}{"artist_status": status}
	if notes != "" {
		updates["verification_notes"] = notes
	}

	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ? AND artist_status = ?", userID, entity.StatusPendingArtist).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
