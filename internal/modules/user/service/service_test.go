package user

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	userDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/dto"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (UserService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpiry: time.Hour}
	return NewUserService(userRepo.NewUserRepository(db), cfg), db
}

func TestSignInCreatesUserAndMintsToken(t *testing.T) {
	svc, db := newService(t)

	resp, err := svc.SignIn(context.Background(), userDto.SignInRequest{
		Fid:      100,
		Username: "alice",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	require.Equal(t, int64(100), resp.User.Fid)
	require.Equal(t, entity.StatusSupporter, resp.User.ArtistStatus)
	// Display name falls back to the handle when the widget omits it.
	require.Equal(t, "alice", resp.User.DisplayName)

	parsed, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	require.Equal(t, strconv.FormatInt(100, 10), claims.Subject)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSignInRefreshesProfileWithoutTouchingCounters(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, userDto.SignInRequest{Fid: 100, Username: "alice"})
	require.NoError(t, err)

	// Simulate points earned between sessions.
	require.NoError(t, db.Model(&entity.User{}).
		Where("fid = ?", 100).
		Update("total_points", 55).Error)

	resp, err := svc.SignIn(ctx, userDto.SignInRequest{
		Fid:         100,
		Username:    "alice",
		DisplayName: "Alice Painter",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Painter", resp.User.DisplayName)
	require.Equal(t, 55, resp.User.TotalPoints)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetByFid(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.GetByFid(ctx, 100)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Upsert(ctx, userDto.UpsertUserRequest{Fid: 100, Username: "alice"})
	require.NoError(t, err)

	user, err := svc.GetByFid(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}
