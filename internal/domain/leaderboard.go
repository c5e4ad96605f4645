package domain

import (
	"context"
	"errors"

	"github.com/athlonhq/backend/internal/domain/scoreboard"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LeaderboardDomain interface {
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type leaderboardDomain struct {
	challengeRepo  repository.ChallengeRepository
	submissionRepo repository.SubmissionRepository
}

func NewLeaderboardDomain(
	challengeRepo repository.ChallengeRepository,
	submissionRepo repository.SubmissionRepository,
) *leaderboardDomain {
	return &leaderboardDomain{
		challengeRepo:  challengeRepo,
		submissionRepo: submissionRepo,
	}
}

// GetLeaderboard computes the live ranking of a challenge. Nothing is
// persisted here; ranks become durable only when the challenge ends.
func (d *leaderboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	challenge, err := d.challengeRepo.GetByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	submissions, err := d.submissionRepo.GetByChallengeID(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for _, entry := range scoreboard.Build(challenge, submissions) {
		entries = append(entries, model.LeaderboardEntry{
			Rank:         entry.Rank,
			SubmissionID: entry.SubmissionID,
			UserID:       entry.UserID,
			UserName:     entry.UserName,
			UserAvatar:   entry.UserAvatar,
			Votes:        entry.Votes,
			Score:        entry.Score,
			Change:       entry.Change,
		})
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}
