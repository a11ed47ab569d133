package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	leaderboardRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/repository"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (LeaderboardService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	svc := NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), userRepo.NewUserRepository(db), nil, 30*time.Second)
	return svc, db
}

func createScorer(t *testing.T, db *gorm.DB, fid int64, username string, total, weekly int) *entity.User {
	t.Helper()
	u := &entity.User{
		Fid:          fid,
		Username:     username,
		DisplayName:  username,
		TotalPoints:  total,
		WeeklyPoints: weekly,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLeaderboardOrdersDescendingAndSkipsZero(t *testing.T) {
	svc, db := newService(t)

	createScorer(t, db, 100, "alice", 50, 5)
	createScorer(t, db, 200, "bob", 120, 40)
	createScorer(t, db, 300, "carol", 80, 0)
	createScorer(t, db, 400, "idle", 0, 0)

	resp, err := svc.Get(context.Background(), Query{Period: PeriodLifetime, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	for i := 1; i < len(resp.Entries); i++ {
		require.GreaterOrEqual(t, resp.Entries[i-1].Points, resp.Entries[i].Points)
	}
	require.Equal(t, "bob", resp.Entries[0].Username)
	require.Equal(t, 1, resp.Entries[0].Position)
	require.Equal(t, "carol", resp.Entries[1].Username)
	require.Equal(t, "alice", resp.Entries[2].Username)
	require.Equal(t, 3, resp.Entries[2].Position)
}

func TestLeaderboardPeriodSelectsColumn(t *testing.T) {
	svc, db := newService(t)

	createScorer(t, db, 100, "alice", 50, 45)
	createScorer(t, db, 200, "bob", 120, 10)

	resp, err := svc.Get(context.Background(), Query{Period: PeriodWeekly, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.Entries[0].Username)
	require.Equal(t, 45, resp.Entries[0].Points)
}

func TestLeaderboardPagination(t *testing.T) {
	svc, db := newService(t)

	for i := int64(1); i <= 5; i++ {
		createScorer(t, db, 100+i, string(rune('a'+i))+"-user", int(i*10), 0)
	}

	page, err := svc.Get(context.Background(), Query{Period: PeriodLifetime, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	require.Equal(t, 3, page.Entries[0].Position)
	require.Equal(t, 30, page.Entries[0].Points)
}

func TestLeaderboardStats(t *testing.T) {
	svc, db := newService(t)

	createScorer(t, db, 100, "alice", 50, 0)
	createScorer(t, db, 200, "bob", 121, 0)
	createScorer(t, db, 300, "idle", 0, 0)

	resp, err := svc.Get(context.Background(), Query{Period: PeriodLifetime, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, resp.Stats.TotalUsers)
	require.EqualValues(t, 171, resp.Stats.TotalPoints)
	// 171 / 2 = 85.5, rounded to nearest.
	require.EqualValues(t, 86, resp.Stats.AveragePoints)
}

func TestLeaderboardRequesterRank(t *testing.T) {
	svc, db := newService(t)

	createScorer(t, db, 100, "alice", 50, 0)
	createScorer(t, db, 200, "bob", 120, 0)
	createScorer(t, db, 300, "carol", 80, 0)

	resp, err := svc.Get(context.Background(), Query{Period: PeriodLifetime, Limit: 10, CurrentUserFid: 100})
	require.NoError(t, err)
	require.NotNil(t, resp.CurrentUserRank)
	require.EqualValues(t, 3, *resp.CurrentUserRank)

	top, err := svc.Get(context.Background(), Query{Period: PeriodLifetime, Limit: 10, CurrentUserFid: 200})
	require.NoError(t, err)
	require.EqualValues(t, 1, *top.CurrentUserRank)

	// Unknown requesters simply get no rank.
	anon, err := svc.Get(context.Background(), Query{Period: PeriodLifetime, Limit: 10, CurrentUserFid: 999})
	require.NoError(t, err)
	require.Nil(t, anon.CurrentUserRank)
}

func TestLeaderboardRejectsUnknownPeriod(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get(context.Background(), Query{Period: "yearly", Limit: 10})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}
