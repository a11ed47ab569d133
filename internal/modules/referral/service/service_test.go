package referral

import (
	"context"
	"strings"
	"testing"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	referralRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/repository"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const adminFid = int64(1)

func newService(t *testing.T) (ReferralService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	cfg := &config.Config{AdminFids: []int64{adminFid}}
	svc := NewReferralService(referralRepo.NewReferralRepository(db), userRepo.NewUserRepository(db), cfg)
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, fid int64, username string, status entity.ArtistStatus) *entity.User {
	t.Helper()
	u := &entity.User{Fid: fid, Username: username, DisplayName: username, ArtistStatus: status}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestGenerateRequiresVerifiedArtistOrAdmin(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	supporter := createUser(t, db, 100, "alice", entity.StatusSupporter)
	_, err := svc.Generate(ctx, supporter.Fid)
	require.ErrorIs(t, err, apperror.ErrForbidden)

	artist := createUser(t, db, 200, "bob", entity.StatusVerifiedArtist)
	resp, err := svc.Generate(ctx, artist.Fid)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.Code, "BOB-"))

	admin := createUser(t, db, adminFid, "root", entity.StatusSupporter)
	_, err = svc.Generate(ctx, admin.Fid)
	require.NoError(t, err)
}

func TestGenerateEnforcesUnusedCap(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	artist := createUser(t, db, 200, "bob", entity.StatusVerifiedArtist)

	for i := 0; i < 10; i++ {
		_, err := svc.Generate(ctx, artist.Fid)
		require.NoError(t, err)
	}

	_, err := svc.Generate(ctx, artist.Fid)
	require.ErrorIs(t, err, apperror.ErrBadRequest)

	// Consuming one frees a slot.
	var code entity.ReferralCode
	require.NoError(t, db.Where("creator_id = ?", artist.ID).First(&code).Error)
	require.NoError(t, db.Model(&code).Update("used", true).Error)

	_, err = svc.Generate(ctx, artist.Fid)
	require.NoError(t, err)
}

func TestRedeemVerifiesApplicantOnce(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	creator := createUser(t, db, 200, "bob", entity.StatusVerifiedArtist)
	generated, err := svc.Generate(ctx, creator.Fid)
	require.NoError(t, err)

	applicant := createUser(t, db, 300, "carol", entity.StatusSupporter)
	referrer, err := svc.Redeem(ctx, applicant, generated.Code)
	require.NoError(t, err)
	require.Equal(t, "bob", referrer.Username)

	var updated entity.User
	require.NoError(t, db.Where("fid = ?", applicant.Fid).First(&updated).Error)
	require.Equal(t, entity.StatusVerifiedArtist, updated.ArtistStatus)
	require.NotNil(t, updated.ReferredByID)
	require.Equal(t, creator.ID, *updated.ReferredByID)

	// The discovery entry is logged at zero points against the referrer.
	var logged entity.Activity
	require.NoError(t, db.Where("user_id = ?", applicant.ID).First(&logged).Error)
	require.Equal(t, activity.TypeArtistDiscovery, logged.ActivityType)
	require.Zero(t, logged.Points)
	require.Equal(t, creator.ID, *logged.TargetUserID)
	require.Zero(t, updated.TotalPoints)

	// Second redemption of the same code fails and leaves the second
	// applicant unverified.
	second := createUser(t, db, 400, "dave", entity.StatusSupporter)
	_, err = svc.Redeem(ctx, second, generated.Code)
	require.ErrorIs(t, err, apperror.ErrConflict)

	var unchanged entity.User
	require.NoError(t, db.Where("fid = ?", second.Fid).First(&unchanged).Error)
	require.Equal(t, entity.StatusSupporter, unchanged.ArtistStatus)
}

func TestRedeemIsCaseInsensitive(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	creator := createUser(t, db, 200, "bob", entity.StatusVerifiedArtist)
	generated, err := svc.Generate(ctx, creator.Fid)
	require.NoError(t, err)

	applicant := createUser(t, db, 300, "carol", entity.StatusSupporter)
	_, err = svc.Redeem(ctx, applicant, strings.ToLower(generated.Code))
	require.NoError(t, err)
}

func TestRedeemRejectsUnknownAndUnauthorizedCodes(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	applicant := createUser(t, db, 300, "carol", entity.StatusSupporter)

	_, err := svc.Redeem(ctx, applicant, "NOPE-1234")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	// A code whose creator lost verified status no longer verifies anyone.
	demoted := createUser(t, db, 500, "eve", entity.StatusSupporter)
	stale := &entity.ReferralCode{Code: "EVE-XYZ1", CreatorID: demoted.ID}
	require.NoError(t, db.Create(stale).Error)

	_, err = svc.Redeem(ctx, applicant, stale.Code)
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestSeedCodes(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	artist := createUser(t, db, 200, "bob", entity.StatusVerifiedArtist)
	require.NoError(t, svc.SeedCodes(ctx, artist, 3))

	list, err := svc.List(ctx, artist.Fid)
	require.NoError(t, err)
	require.Len(t, list.Codes, 3)
	require.EqualValues(t, 3, list.Unused)
}
