package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/athlonhq/backend/internal/common"
	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VoteDomain interface {
	Vote(ctx context.Context, req *model.VoteRequest) (*model.VoteResponse, error)
}

type voteDomain struct {
	submissionRepo repository.SubmissionRepository
	challengeRepo  repository.ChallengeRepository
	voteRepo       repository.VoteRepository
	publisher      pubsub.Publisher
}

func NewVoteDomain(
	submissionRepo repository.SubmissionRepository,
	challengeRepo repository.ChallengeRepository,
	voteRepo repository.VoteRepository,
	publisher pubsub.Publisher,
) *voteDomain {
	return &voteDomain{
		submissionRepo: submissionRepo,
		challengeRepo:  challengeRepo,
		voteRepo:       voteRepo,
		publisher:      publisher,
	}
}

// Vote records one vote of the requester on a submission. The vote row
// and the counter bump commit together; the counter uses a store-side
// increment so simultaneous voters cannot lose updates, and the row's
// composite key rejects a duplicate even if two requests race past the
// read check.
func (d *voteDomain) Vote(ctx context.Context, req *model.VoteRequest) (*model.VoteResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	submission, err := d.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	challenge, err := d.challengeRepo.GetByID(ctx, submission.ChallengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if challenge.Status == entity.ChallengeCompleted {
		return nil, errorx.New(errorx.ChallengeCompleted, "Challenge has already completed")
	}

	_, err = d.voteRepo.Get(ctx, submission.ID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyVoted, "You have already voted this submission")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.voteRepo.Create(ctx, &entity.SubmissionVote{
		SubmissionID: submission.ID,
		UserID:       userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot create vote row: %v", err)
		return nil, errorx.New(errorx.AlreadyVoted, "You have already voted this submission")
	}

	if err := d.submissionRepo.IncreaseVotes(ctx, submission.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase votes: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.VoteCastTotal].WithLabelValues().Inc()

	change := model.ChallengeChanged{
		Kind:        model.ChangeVoteCast,
		EventID:     challenge.EventID,
		ChallengeID: challenge.ID,
	}

	if b, err := json.Marshal(change); err == nil {
		err := d.publisher.Publish(ctx, model.ChallengeChangeTopic, &pubsub.Pack{
			Key: []byte(change.EventID),
			Msg: b,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish change event: %v", err)
		}
	}

	return &model.VoteResponse{}, nil
}
