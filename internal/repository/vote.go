package repository

import (
	"context"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
)

type VoteRepository interface {
	Create(ctx context.Context, data *entity.SubmissionVote) error
	Get(ctx context.Context, submissionID, userID string) (*entity.SubmissionVote, error)
	Count(ctx context.Context, submissionID string) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, data *entity.SubmissionVote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *voteRepository) Get(ctx context.Context, submissionID, userID string) (*entity.SubmissionVote, error) {
	var result entity.SubmissionVote
	err := xcontext.DB(ctx).
		Where("submission_id=? AND user_id=?", submissionID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *voteRepository) Count(ctx context.Context, submissionID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.SubmissionVote{}).
		Where("submission_id=?", submissionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
