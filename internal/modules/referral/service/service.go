package referral

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/config"
	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activity "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/service"
	referralDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/dto"
	referralRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/referral/repository"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"gorm.io/gorm"
)

const (
	maxUnusedCodes  = 10
	maxCodeAttempts = 10
	suffixLength    = 4
	prefixLength    = 8
	suffixCharset   = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

type ReferralService interface {
	List(ctx context.Context, fid int64) (*referralDto.ReferralListResponse, error)
	Generate(ctx context.Context, fid int64) (*referralDto.GenerateCodeResponse, error)
	// Redeem consumes the code and verifies the applicant. Returns the code's
	// creator so callers can reference the referrer.
	Redeem(ctx context.Context, applicant *entity.User, code string) (*entity.User, error)
	// SeedCodes mints up to n codes for a newly verified artist, stopping
	// quietly if unique candidates run out.
	SeedCodes(ctx context.Context, creator *entity.User, n int) error
}

type referralService struct {
	repo     referralRepo.ReferralRepository
	userRepo userRepo.UserRepository
	cfg      *config.Config
}

func NewReferralService(repo referralRepo.ReferralRepository, userRepository userRepo.UserRepository, cfg *config.Config) ReferralService {
	return &referralService{repo: repo, userRepo: userRepository, cfg: cfg}
}

func (s *referralService) List(ctx context.Context, fid int64) (*referralDto.ReferralListResponse, error) {
	user, err := s.findUser(ctx, fid)
	if err != nil {
		return nil, err
	}

	codes, err := s.repo.ListByCreator(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := &referralDto.ReferralListResponse{
		Success: true,
		Codes:   make([]referralDto.ReferralCodeEntry, 0, len(codes)),
	}
	for _, c := range codes {
		if !c.Used {
			resp.Unused++
		}
		resp.Codes = append(resp.Codes, referralDto.ReferralCodeEntry{
			ID:        c.ID,
			Code:      c.Code,
			Used:      c.Used,
			CreatedAt: c.CreatedAt,
		})
	}
	return resp, nil
}

func (s *referralService) Generate(ctx context.Context, fid int64) (*referralDto.GenerateCodeResponse, error) {
	user, err := s.findUser(ctx, fid)
	if err != nil {
		return nil, err
	}

	if !user.IsVerifiedArtist() && !s.cfg.IsAdmin(user.Fid) {
		return nil, apperror.Forbidden("only verified artists can generate referral codes")
	}

	unused, err := s.repo.CountUnusedByCreator(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if unused >= maxUnusedCodes {
		return nil, apperror.BadRequest("unused referral code limit reached")
	}

	code, err := s.mintCode(ctx, user)
	if err != nil {
		return nil, err
	}

	return &referralDto.GenerateCodeResponse{Success: true, Code: code.Code}, nil
}

func (s *referralService) Redeem(ctx context.Context, applicant *entity.User, code string) (*entity.User, error) {
	rc, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("referral code not found")
		}
		return nil, err
	}

	if rc.Used {
		return nil, apperror.Conflict("referral code already used")
	}
	if !rc.Creator.IsVerifiedArtist() && !s.cfg.IsAdmin(rc.Creator.Fid) {
		return nil, apperror.BadRequest("referral code creator is not a verified artist")
	}

	entry := &entity.Activity{
		UserID:       applicant.ID,
		TargetUserID: &rc.CreatorID,
		ActivityType: activity.TypeArtistDiscovery,
		Points:       0,
	}

	if err := s.repo.Redeem(ctx, rc, applicant, entry); err != nil {
		return nil, err
	}

	return &rc.Creator, nil
}

func (s *referralService) SeedCodes(ctx context.Context, creator *entity.User, n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.mintCode(ctx, creator); err != nil {
			return err
		}
	}
	return nil
}

func (s *referralService) mintCode(ctx context.Context, creator *entity.User) (*entity.ReferralCode, error) {
	prefix := codePrefix(creator.Username)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		suffix, err := randomSuffix(suffixLength)
		if err != nil {
			return nil, err
		}
		candidate := fmt.Sprintf("%s-%s", prefix, suffix)

		_, err = s.repo.FindByCode(ctx, candidate)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		code := &entity.ReferralCode{Code: candidate, CreatorID: creator.ID}
		if err := s.repo.Create(ctx, code); err != nil {
			if isDuplicate(err) {
				continue
			}
			return nil, err
		}
		return code, nil
	}

	return nil, apperror.New(http.StatusInternalServerError, "could not generate a unique referral code", apperror.ErrInternal)
}

// codePrefix derives the human-readable part of a code from the creator's
// handle: uppercased, alphanumerics only, at most prefixLength characters.
func codePrefix(username string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(username) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= prefixLength {
			break
		}
	}
	if b.Len() == 0 {
		return "ARTIST"
	}
	return b.String()
}

func randomSuffix(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = suffixCharset[int(b)%len(suffixCharset)]
	}
	return string(out), nil
}

func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func (s *referralService) findUser(ctx context.Context, fid int64) (*entity.User, error) {
	user, err := s.userRepo.FindByFid(ctx, fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
