package artist

import (
	"context"
	"testing"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	artistDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/dto"
	artistRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/repository"
	clapDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/dto"
	clapRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/repository"
	clapService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/clap/service"
	followRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/follow/repository"
	referralRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/repository"
	referralService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/service"
	searchService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc      ArtistService
	claps    clapService.ClapService
	referral referralService.ReferralService
	db       *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)

	users := userRepo.NewUserRepository(db)
	activities := activityRepo.NewActivityRepository(db)
	artists := artistRepo.NewArtistRepository(db)
	claps := clapRepo.NewClapRepository(db)
	follows := followRepo.NewFollowRepository(db)
	referrals := referralRepo.NewReferralRepository(db)

	cfg := &config.Config{}
	clapSvc := clapService.NewClapService(claps, activities, users, nil, nil)
	referralSvc := referralService.NewReferralService(referrals, users, cfg)
	searchSvc := searchService.NewSearchService(nil, artists)

	svc := NewArtistService(artists, users, activities, claps, follows, clapSvc, referralSvc, searchSvc)
	return &fixture{svc: svc, claps: clapSvc, referral: referralSvc, db: db}
}

func (f *fixture) createUser(t *testing.T, fid int64, username string, status entity.ArtistStatus) *entity.User {
	t.Helper()
	u := &entity.User{Fid: fid, Username: username, DisplayName: username, ArtistStatus: status}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestApplyWithoutCodeGoesPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	applicant := f.createUser(t, 100, "alice", entity.StatusSupporter)

	resp, err := f.svc.Apply(ctx, artistDto.ApplyRequest{Fid: applicant.Fid, Message: "I paint murals"})
	require.NoError(t, err)
	require.Equal(t, string(entity.StatusPendingArtist), resp.Status)
	require.Empty(t, resp.ReferredBy)

	var updated entity.User
	require.NoError(t, f.db.Where("fid = ?", applicant.Fid).First(&updated).Error)
	require.Equal(t, entity.StatusPendingArtist, updated.ArtistStatus)
	require.NotNil(t, updated.VerificationNotes)
	require.Equal(t, "I paint murals", *updated.VerificationNotes)
}

func TestApplyWithCodeVerifiesInstantly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	creator := f.createUser(t, 200, "bob", entity.StatusVerifiedArtist)
	generated, err := f.referral.Generate(ctx, creator.Fid)
	require.NoError(t, err)

	applicant := f.createUser(t, 100, "alice", entity.StatusSupporter)
	resp, err := f.svc.Apply(ctx, artistDto.ApplyRequest{Fid: applicant.Fid, ReferralCode: generated.Code})
	require.NoError(t, err)
	require.Equal(t, string(entity.StatusVerifiedArtist), resp.Status)
	require.Equal(t, "bob", resp.ReferredBy)
}

func TestApplyTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.createUser(t, 100, "alice", entity.StatusPendingArtist)
	_, err := f.svc.Apply(ctx, artistDto.ApplyRequest{Fid: pending.Fid})
	require.ErrorIs(t, err, apperror.ErrConflict)

	verified := f.createUser(t, 200, "bob", entity.StatusVerifiedArtist)
	_, err = f.svc.Apply(ctx, artistDto.ApplyRequest{Fid: verified.Fid})
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestListReturnsVerifiedByWeeklyPoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	low := f.createUser(t, 100, "low", entity.StatusVerifiedArtist)
	high := f.createUser(t, 200, "high", entity.StatusVerifiedArtist)
	f.createUser(t, 300, "fan", entity.StatusSupporter)

	require.NoError(t, f.db.Model(low).Update("weekly_points", 5).Error)
	require.NoError(t, f.db.Model(high).Update("weekly_points", 50).Error)

	resp, err := f.svc.List(ctx, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, resp.Total)
	require.Len(t, resp.Artists, 2)
	require.Equal(t, "high", resp.Artists[0].Username)
	require.Equal(t, "low", resp.Artists[1].Username)
}

func TestProfileAggregatesAndClappedToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	artist := f.createUser(t, 200, "bob", entity.StatusVerifiedArtist)
	fan := f.createUser(t, 100, "alice", entity.StatusSupporter)

	_, err := f.claps.Clap(ctx, clapDto.ClapRequest{UserFid: fan.Fid, TargetFid: artist.Fid})
	require.NoError(t, err)

	resp, err := f.svc.Profile(ctx, "bob", fan.Fid)
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.ClapsReceived)
	require.EqualValues(t, 1, resp.Connections)
	require.True(t, resp.ClappedToday)
	require.False(t, resp.IsFollowing)
	require.Equal(t, artist.Fid, resp.Artist.Fid)

	// Anonymous view leaves the requester flags unset.
	anon, err := f.svc.Profile(ctx, "bob", 0)
	require.NoError(t, err)
	require.False(t, anon.ClappedToday)
}

func TestProfileLookupIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	f.createUser(t, 200, "bob", entity.StatusVerifiedArtist)

	resp, err := f.svc.Profile(context.Background(), "BOB", 0)
	require.NoError(t, err)
	require.Equal(t, "bob", resp.Artist.Username)
}

func TestProfileHidesUnverifiedUsers(t *testing.T) {
	f := newFixture(t)

	f.createUser(t, 100, "alice", entity.StatusSupporter)

	_, err := f.svc.Profile(context.Background(), "alice", 0)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Profile(context.Background(), "ghost", 0)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
