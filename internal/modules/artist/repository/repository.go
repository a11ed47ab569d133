package repository

import (
	"context"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	"gorm.io/gorm"
)

type ArtistRepository interface {
	// ListVerified returns verified artists ordered by weekly points descending.
	ListVerified(ctx context.Context, limit, offset int) ([]entity.User, int64, error)
	// SearchVerified is the database fallback for artist search: a
	// case-insensitive substring match over username and display name.
	SearchVerified(ctx context.Context, query string, limit int) ([]entity.User, error)
	ListByStatus(ctx context.Context, status entity.ArtistStatus) ([]entity.User, error)
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) ListVerified(ctx context.Context, limit, offset int) ([]entity.User, int64, error) {
	var artists []entity.User
	var total int64

	base := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("artist_status = ?", entity.StatusVerifiedArtist)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("weekly_points DESC").
		Order("total_points DESC").
		Limit(limit).
		Offset(offset).
		Find(&artists).Error
	if err != nil {
		return nil, 0, err
	}

	return artists, total, nil
}

func (r *artistRepository) SearchVerified(ctx context.Context, query string, limit int) ([]entity.User, error) {
	var artists []entity.User
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("artist_status = ?", entity.StatusVerifiedArtist).
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?)", pattern, pattern).
		Order("weekly_points DESC").
		Limit(limit).
		Find(&artists).Error
	return artists, err
}

func (r *artistRepository) ListByStatus(ctx context.Context, status entity.ArtistStatus) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("artist_status = ?", status).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}
