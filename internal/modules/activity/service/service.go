package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Flexasaurusrex/art-claps-sub000/internal/entity"
	activityDto "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/dto"
	activityRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/activity/repository"
	userRepo "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/user/repository"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"gorm.io/gorm"
)

// Activity types and their point values. The table is closed: anything not
// listed here is rejected before any write.
const (
	TypeClapReaction         = "CLAP_REACTION"
	TypeFollowNewArtist      = "FOLLOW_NEW_ARTIST"
	TypeShareArtistWork      = "SHARE_ARTIST_WORK"
	TypeArtistDiscovery      = "ARTIST_DISCOVERY"
	TypeCollaborationTag     = "COLLABORATION_TAG"
	TypeCrossPromotion       = "CROSS_PROMOTION"
	TypeDetailedCritique     = "DETAILED_CRITIQUE"
	TypeArtThreadCreation    = "ART_THREAD_CREATION"
	TypeArtistSpotlight      = "ARTIST_SPOTLIGHT"
	TypeRecastWithComment    = "RECAST_WITH_COMMENT"
	TypeArtistTagMention     = "ARTIST_TAG_MENTION"
	TypeQualityReply         = "QUALITY_REPLY"
	TypeWorkShared           = "WORK_SHARED"
	TypeQualityReplyReceived = "QUALITY_REPLY_RECEIVED"
)

var PointValues = map[string]int{
	TypeClapReaction:         5,
	TypeFollowNewArtist:      10,
	TypeShareArtistWork:      15,
	TypeArtistDiscovery:      20,
	TypeCollaborationTag:     25,
	TypeCrossPromotion:       20,
	TypeDetailedCritique:     30,
	TypeArtThreadCreation:    35,
	TypeArtistSpotlight:      40,
	TypeRecastWithComment:    12,
	TypeArtistTagMention:     8,
	TypeQualityReply:         10,
	TypeWorkShared:           0,
	TypeQualityReplyReceived: 0,
}

// AwardInput is the internal contract of the points accountant used by the
// clap, follow and referral workflows.
type AwardInput struct {
	Actor        *entity.User
	ActivityType string
	Target       *entity.User
	CastHash     *string
	Metadata     map[string]any
	// PointsOverride replaces the table value when set. Referral redemption
	// logs ARTIST_DISCOVERY at zero points this way.
	PointsOverride *int
}

type PointsService interface {
	// Award validates the type, appends the ledger row and credits the
	// counters as one transaction. Returns the created activity.
	Award(ctx context.Context, in AwardInput) (*entity.Activity, error)
	// AwardTx is Award inside an enclosing transaction.
	AwardTx(tx *gorm.DB, in AwardInput) (*entity.Activity, error)
	Record(ctx context.Context, req activityDto.RecordActivityRequest) (*activityDto.RecordActivityResponse, error)
	History(ctx context.Context, fid int64, limit, offset int) (*activityDto.ActivityHistoryResponse, error)
}

type pointsService struct {
	repo     activityRepo.ActivityRepository
	userRepo userRepo.UserRepository
}

func NewPointsService(repo activityRepo.ActivityRepository, userRepo userRepo.UserRepository) PointsService {
	return &pointsService{repo: repo, userRepo: userRepo}
}

func (s *pointsService) buildActivity(in AwardInput) (*entity.Activity, error) {
	points, ok := PointValues[in.ActivityType]
	if !ok {
		return nil, apperror.BadRequest(fmt.Sprintf("unknown activity type: %s", in.ActivityType))
	}
	if in.PointsOverride != nil {
		points = *in.PointsOverride
	}

	activity := &entity.Activity{
		UserID:       in.Actor.ID,
		ActivityType: in.ActivityType,
		Points:       points,
		CastHash:     in.CastHash,
	}
	if in.Target != nil {
		activity.TargetUserID = &in.Target.ID
	}

	if len(in.Metadata) > 0 {
		blob, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		activity.Metadata = string(blob)
	}

	return activity, nil
}

func (s *pointsService) Award(ctx context.Context, in AwardInput) (*entity.Activity, error) {
	activity, err := s.buildActivity(in)
	if err != nil {
		return nil, err
	}

	if in.CastHash != nil {
		exists, err := s.repo.HasCastActivity(ctx, activity.UserID, activity.ActivityType, *in.CastHash, activity.TargetUserID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperror.Conflict("activity already recorded for this cast")
		}
	}

	if err := s.repo.Record(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *pointsService) AwardTx(tx *gorm.DB, in AwardInput) (*entity.Activity, error) {
	activity, err := s.buildActivity(in)
	if err != nil {
		return nil, err
	}

	if err := activityRepo.RecordTx(tx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *pointsService) Record(ctx context.Context, req activityDto.RecordActivityRequest) (*activityDto.RecordActivityResponse, error) {
	actor, err := s.userRepo.FindByFid(ctx, req.UserFid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	var target *entity.User
	if req.TargetFid != nil {
		target, err = s.userRepo.FindByFid(ctx, *req.TargetFid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.NotFound("target user not found")
			}
			return nil, err
		}
	}

	activity, err := s.Award(ctx, AwardInput{
		Actor:        actor,
		ActivityType: req.ActivityType,
		Target:       target,
		CastHash:     req.CastHash,
		Metadata:     req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.FindByFid(ctx, req.UserFid)
	if err != nil {
		return nil, err
	}

	return &activityDto.RecordActivityResponse{
		Success:        true,
		ActivityID:     activity.ID,
		PointsEarned:   activity.Points,
		NewTotalPoints: updated.TotalPoints,
	}, nil
}

func (s *pointsService) History(ctx context.Context, fid int64, limit, offset int) (*activityDto.ActivityHistoryResponse, error) {
	user, err := s.userRepo.FindByFid(ctx, fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	activities, total, err := s.repo.ListByUser(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]activityDto.ActivityEntry, 0, len(activities))
	for _, a := range activities {
		entry := activityDto.ActivityEntry{
			ID:           a.ID,
			ActivityType: a.ActivityType,
			Points:       a.Points,
			CastHash:     a.CastHash,
			CreatedAt:    a.CreatedAt,
		}
		if a.TargetUser != nil {
			entry.TargetUser = &activityDto.TargetUserSummary{
				Fid:         a.TargetUser.Fid,
				Username:    a.TargetUser.Username,
				DisplayName: a.TargetUser.DisplayName,
				PfpURL:      a.TargetUser.PfpURL,
			}
		}
		entries = append(entries, entry)
	}

	return &activityDto.ActivityHistoryResponse{
		Success:    true,
		Activities: entries,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
