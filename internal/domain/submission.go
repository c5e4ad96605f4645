package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionDomain interface {
	Submit(ctx context.Context, req *model.SubmitRequest) (*model.SubmitResponse, error)
	Participate(ctx context.Context, req *model.ParticipateRequest) (*model.ParticipateResponse, error)
	Get(ctx context.Context, req *model.GetSubmissionRequest) (*model.GetSubmissionResponse, error)
	GetList(ctx context.Context, req *model.GetListSubmissionRequest) (*model.GetListSubmissionResponse, error)
}

type submissionDomain struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
	submissionRepo  repository.SubmissionRepository
	userRepo        repository.UserRepository
	publisher       pubsub.Publisher
}

func NewSubmissionDomain(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *submissionDomain {
	return &submissionDomain{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		userRepo:        userRepo,
		publisher:       publisher,
	}
}

func (d *submissionDomain) Submit(
	ctx context.Context, req *model.SubmitRequest,
) (*model.SubmitResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get requester: %v", err)
		return nil, errorx.Unknown
	}

	challenge, err := d.challengeRepo.GetByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	if err := d.checkJoinable(ctx, challenge, userID, now); err != nil {
		return nil, err
	}

	// Identity is snapshotted onto the submission so later profile edits
	// never rewrite history.
	submission := &entity.Submission{
		Base:        entity.Base{ID: uuid.NewString()},
		ChallengeID: challenge.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		UserAvatar:  user.AvatarURL,
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		SubmittedAt: now,
		Votes:       0,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.join(ctx, challenge, userID); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publishChange(ctx, model.ChallengeChanged{
		Kind:        model.ChangeSubmissionCreated,
		EventID:     challenge.EventID,
		ChallengeID: challenge.ID,
	})

	return &model.SubmitResponse{ID: submission.ID}, nil
}

// Participate joins a challenge without content, e.g. endurance
// challenges where the entry is the act of showing up. The same guards
// as Submit apply but no submission record is created.
func (d *submissionDomain) Participate(
	ctx context.Context, req *model.ParticipateRequest,
) (*model.ParticipateResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	challenge, err := d.challengeRepo.GetByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.checkJoinable(ctx, challenge, userID, time.Now()); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.join(ctx, challenge, userID); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ParticipateResponse{}, nil
}

func (d *submissionDomain) Get(
	ctx context.Context, req *model.GetSubmissionRequest,
) (*model.GetSubmissionResponse, error) {
	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetSubmissionResponse(model.ConvertSubmission(submission))
	return &resp, nil
}

func (d *submissionDomain) GetList(
	ctx context.Context, req *model.GetListSubmissionRequest,
) (*model.GetListSubmissionResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	submissions, err := d.submissionRepo.GetList(ctx, req.ChallengeID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Submission{}
	for i := range submissions {
		resp = append(resp, model.ConvertSubmission(&submissions[i]))
	}

	return &model.GetListSubmissionResponse{Submissions: resp}, nil
}

// checkJoinable validates, in order: the challenge accepts entries now,
// the user has not joined before, and the participant cap is not hit.
func (d *submissionDomain) checkJoinable(
	ctx context.Context, challenge *entity.Challenge, userID string, now time.Time,
) error {
	if challenge.Status == entity.ChallengeCompleted {
		return errorx.New(errorx.ChallengeCompleted, "Challenge has already completed")
	}

	// A challenge inside its window accepts entries even if nothing has
	// flipped its status to active yet.
	if challenge.Status != entity.ChallengeActive && !challenge.IsInActiveWindow(now) {
		return errorx.New(errorx.ChallengeNotActive, "Challenge is not active")
	}

	_, err := d.participantRepo.Get(ctx, challenge.ID, userID)
	if err == nil {
		return errorx.New(errorx.AlreadyParticipated, "You have already joined this challenge")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return errorx.Unknown
	}

	if challenge.MaxParticipants.Valid {
		count, err := d.participantRepo.Count(ctx, challenge.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
			return errorx.Unknown
		}

		if count >= challenge.MaxParticipants.Int64 {
			return errorx.New(errorx.CapacityExceeded, "Challenge is full")
		}
	}

	return nil
}

// join appends the participant row and flips an upcoming challenge to
// active on first participation.
func (d *submissionDomain) join(
	ctx context.Context, challenge *entity.Challenge, userID string,
) error {
	err := d.participantRepo.Create(ctx, &entity.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create participant: %v", err)
		return errorx.Unknown
	}

	if challenge.Status == entity.ChallengeUpcoming {
		err := d.challengeRepo.UpdateStatus(ctx, challenge.ID, entity.ChallengeActive)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot activate challenge: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

func (d *submissionDomain) publishChange(ctx context.Context, change model.ChallengeChanged) {
	b, err := json.Marshal(change)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal change event: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, model.ChallengeChangeTopic, &pubsub.Pack{
		Key: []byte(change.EventID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish change event: %v", err)
	}
}
