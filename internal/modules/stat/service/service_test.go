package stat

import (
	"context"
	"testing"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestOverviewCountsTheWholeService(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := userRepo.NewUserRepository(db)
	activities := activityRepo.NewActivityRepository(db)
	svc := NewStatService(users, activities)
	ctx := context.Background()

	fan := &entity.User{Fid: 100, Username: "alice"}
	artist := &entity.User{Fid: 200, Username: "bob", ArtistStatus: entity.StatusVerifiedArtist}
	pending := &entity.User{Fid: 300, Username: "carol", ArtistStatus: entity.StatusPendingArtist}
	for _, u := range []*entity.User{fan, artist, pending} {
		require.NoError(t, db.Create(u).Error)
	}

	require.NoError(t, activities.Record(ctx, &entity.Activity{
		UserID:       fan.ID,
		TargetUserID: &artist.ID,
		ActivityType: activity.TypeClapReaction,
		Points:       5,
	}))
	require.NoError(t, activities.Record(ctx, &entity.Activity{
		UserID:       fan.ID,
		ActivityType: activity.TypeArtThreadCreation,
		Points:       35,
	}))

	resp, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, resp.TotalUsers)
	require.EqualValues(t, 1, resp.TotalArtists)
	require.EqualValues(t, 1, resp.PendingArtists)
	require.EqualValues(t, 1, resp.TotalClaps)
	require.EqualValues(t, 40, resp.TotalPoints)
}
