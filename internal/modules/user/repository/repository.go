package repository

import (
	"context"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// Upsert inserts the user keyed by fid, refreshing the externally synced
	// identity fields on conflict. Returns the stored row.
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByFid(ctx context.Context, fid int64) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.ArtistStatus) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	now := time.Now()
	user.LastSyncedAt = &now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "fid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "display_name", "pfp_url", "bio", "last_synced_at", "updated_at",
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	return r.FindByFid(ctx, user.Fid)
}

func (r *userRepository) FindByFid(ctx context.Context, fid int64) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("fid = ?", fid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByStatus(ctx context.Context, status entity.ArtistStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("artist_status = ?", status).
		Count(&count).Error
	return count, err
}
