package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	userDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/dto"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type UserService interface {
	SignIn(ctx context.Context, req userDto.SignInRequest) (*userDto.SignInResponse, error)
	Upsert(ctx context.Context, req userDto.UpsertUserRequest) (*entity.User, error)
	GetByFid(ctx context.Context, fid int64) (*entity.User, error)
}

type userService struct {
	repo userRepo.UserRepository
	cfg  *config.Config
}

func NewUserService(repo userRepo.UserRepository, cfg *config.Config) UserService {
	return &userService{repo: repo, cfg: cfg}
}

func (s *userService) SignIn(ctx context.Context, req userDto.SignInRequest) (*userDto.SignInResponse, error) {
	user, err := s.upsertFromIdentity(ctx, req.Fid, req.Username, req.DisplayName, req.PfpURL, req.Bio)
	if err != nil {
		return nil, err
	}

	token, err := s.mintToken(user.Fid)
	if err != nil {
		return nil, err
	}

	return &userDto.SignInResponse{Token: token, User: user}, nil
}

func (s *userService) Upsert(ctx context.Context, req userDto.UpsertUserRequest) (*entity.User, error) {
	return s.upsertFromIdentity(ctx, req.Fid, req.Username, req.DisplayName, req.PfpURL, req.Bio)
}

func (s *userService) GetByFid(ctx context.Context, fid int64) (*entity.User, error) {
	user, err := s.repo.FindByFid(ctx, fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) upsertFromIdentity(ctx context.Context, fid int64, username, displayName string, pfpURL, bio *string) (*entity.User, error) {
	if displayName == "" {
		displayName = username
	}

	user := &entity.User{
		Fid:         fid,
		Username:    username,
		DisplayName: displayName,
		PfpURL:      pfpURL,
		Bio:         bio,
	}

	return s.repo.Upsert(ctx, user)
}

func (s *userService) mintToken(fid int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(fid, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
