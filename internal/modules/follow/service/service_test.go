package follow

import (
	"context"
	"testing"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	followDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/dto"
	followRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/repository"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (FollowService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	svc := NewFollowService(followRepo.NewFollowRepository(db), userRepo.NewUserRepository(db), nil)
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, fid int64, username string) *entity.User {
	t.Helper()
	u := &entity.User{Fid: fid, Username: username, DisplayName: username}
	require.NoError(t, db.Create(u).Error)
	return u
}

func reload(t *testing.T, db *gorm.DB, fid int64) *entity.User {
	t.Helper()
	var u entity.User
	require.NoError(t, db.Where("fid = ?", fid).First(&u).Error)
	return &u
}

func TestFollowAwardsPointsAndBumpsCounters(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	actor := createUser(t, db, 100, "alice")
	target := createUser(t, db, 200, "bob")

	resp, err := svc.Toggle(ctx, followDto.FollowRequest{UserFid: actor.Fid, TargetFid: target.Fid})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.IsFollowing)
	require.Equal(t, "followed", resp.Action)
	require.Equal(t, 10, resp.PointsEarned)

	updatedActor := reload(t, db, actor.Fid)
	require.Equal(t, 1, updatedActor.FollowingCount)
	require.Equal(t, 10, updatedActor.TotalPoints)

	updatedTarget := reload(t, db, target.Fid)
	require.Equal(t, 1, updatedTarget.FollowerCount)
	require.Equal(t, 1, updatedTarget.SupportReceived)
}

func TestUnfollowRestoresCountersButKeepsPoints(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	actor := createUser(t, db, 100, "alice")
	target := createUser(t, db, 200, "bob")

	_, err := svc.Toggle(ctx, followDto.FollowRequest{UserFid: actor.Fid, TargetFid: target.Fid})
	require.NoError(t, err)

	resp, err := svc.Toggle(ctx, followDto.FollowRequest{UserFid: actor.Fid, TargetFid: target.Fid})
	require.NoError(t, err)
	require.False(t, resp.IsFollowing)
	require.Equal(t, "unfollowed", resp.Action)
	require.Zero(t, resp.PointsEarned)

	updatedActor := reload(t, db, actor.Fid)
	require.Zero(t, updatedActor.FollowingCount)
	require.Equal(t, 10, updatedActor.TotalPoints)

	require.Zero(t, reload(t, db, target.Fid).FollowerCount)
}

func TestRefollowAwardsAgain(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	actor := createUser(t, db, 100, "alice")
	target := createUser(t, db, 200, "bob")

	for _, want := range []bool{true, false, true} {
		resp, err := svc.Toggle(ctx, followDto.FollowRequest{UserFid: actor.Fid, TargetFid: target.Fid})
		require.NoError(t, err)
		require.Equal(t, want, resp.IsFollowing)
	}

	updatedActor := reload(t, db, actor.Fid)
	require.Equal(t, 1, updatedActor.FollowingCount)
	require.Equal(t, 20, updatedActor.TotalPoints)
}

func TestSelfFollowIsRejected(t *testing.T) {
	svc, db := newService(t)

	actor := createUser(t, db, 100, "alice")

	_, err := svc.Toggle(context.Background(), followDto.FollowRequest{UserFid: actor.Fid, TargetFid: actor.Fid})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestFollowUnknownTargetIsNotFound(t *testing.T) {
	svc, db := newService(t)

	actor := createUser(t, db, 100, "alice")

	_, err := svc.Toggle(context.Background(), followDto.FollowRequest{UserFid: actor.Fid, TargetFid: 999})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStatusReadsWithoutMutating(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	actor := createUser(t, db, 100, "alice")
	target := createUser(t, db, 200, "bob")

	status, err := svc.Status(ctx, actor.Fid, target.Fid)
	require.NoError(t, err)
	require.False(t, status.IsFollowing)

	_, err = svc.Toggle(ctx, followDto.FollowRequest{UserFid: actor.Fid, TargetFid: target.Fid})
	require.NoError(t, err)

	status, err = svc.Status(ctx, actor.Fid, target.Fid)
	require.NoError(t, err)
	require.True(t, status.IsFollowing)

	// Reading twice changes nothing.
	status, err = svc.Status(ctx, actor.Fid, target.Fid)
	require.NoError(t, err)
	require.True(t, status.IsFollowing)
	require.Equal(t, 10, reload(t, db, actor.Fid).TotalPoints)
}
