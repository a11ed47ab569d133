package profile

import (
	"context"
	"testing"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	artistRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/artist/repository"
	profileDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/profile/dto"
	searchService "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/search/service"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (ProfileService, *gorm.DB) {
	db := testutil.NewTestDB(t)
	searchSvc := searchService.NewSearchService(nil, artistRepo.NewArtistRepository(db))
	svc := NewProfileService(userRepo.NewUserRepository(db), nil, searchSvc)
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, fid int64, username string) *entity.User {
	t.Helper()
	u := &entity.User{Fid: fid, Username: username, DisplayName: username}
	require.NoError(t, db.Create(u).Error)
	return u
}

func strPtr(s string) *string { return &s }

func TestEditUpdatesBioAndLinks(t *testing.T) {
	svc, db := newService(t)

	user := createUser(t, db, 100, "alice")

	resp, err := svc.Edit(context.Background(), profileDto.EditProfileInput{
		Fid:         user.Fid,
		ExtendedBio: strPtr("Muralist from Lisbon."),
		SocialLinks: []entity.SocialLink{
			{Label: "portfolio", URL: "https://alice.art"},
			{Label: "shop", URL: "http://shop.alice.art/prints"},
		},
		LinksProvided: true,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Muralist from Lisbon.", resp.ExtendedBio)
	require.Len(t, resp.SocialLinks, 2)

	var updated entity.User
	require.NoError(t, db.Where("fid = ?", user.Fid).First(&updated).Error)
	require.Contains(t, updated.SocialLinks, "alice.art")
}

func TestEditLeavesLinksWhenNotProvided(t *testing.T) {
	svc, db := newService(t)

	user := createUser(t, db, 100, "alice")
	require.NoError(t, db.Model(user).
		Update("social_links", `[{"label":"portfolio","url":"https://alice.art"}]`).Error)

	resp, err := svc.Edit(context.Background(), profileDto.EditProfileInput{
		Fid:         user.Fid,
		ExtendedBio: strPtr("updated bio"),
	})
	require.NoError(t, err)
	require.Len(t, resp.SocialLinks, 1)
}

func TestEditClearsLinksWithEmptyList(t *testing.T) {
	svc, db := newService(t)

	user := createUser(t, db, 100, "alice")
	require.NoError(t, db.Model(user).
		Update("social_links", `[{"label":"portfolio","url":"https://alice.art"}]`).Error)

	resp, err := svc.Edit(context.Background(), profileDto.EditProfileInput{
		Fid:           user.Fid,
		SocialLinks:   []entity.SocialLink{},
		LinksProvided: true,
	})
	require.NoError(t, err)
	require.Empty(t, resp.SocialLinks)
}

func TestEditRejectsBadLinks(t *testing.T) {
	svc, db := newService(t)

	user := createUser(t, db, 100, "alice")

	cases := []entity.SocialLink{
		{Label: "", URL: "https://alice.art"},
		{Label: "portfolio", URL: "not a url"},
		{Label: "portfolio", URL: "javascript:alert(1)"},
		{Label: "portfolio", URL: "ftp://alice.art/files"},
	}
	for _, link := range cases {
		_, err := svc.Edit(context.Background(), profileDto.EditProfileInput{
			Fid:           user.Fid,
			SocialLinks:   []entity.SocialLink{link},
			LinksProvided: true,
		})
		require.ErrorIs(t, err, apperror.ErrBadRequest, "link %+v should be rejected", link)
	}
}

func TestEditUnknownUserIsNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Edit(context.Background(), profileDto.EditProfileInput{Fid: 999})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
