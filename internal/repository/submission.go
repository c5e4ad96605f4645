package repository

import (
	"context"
	"errors"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetByChallengeID(ctx context.Context, challengeID string) ([]entity.Submission, error)
	GetList(ctx context.Context, challengeID string, offset, limit int) ([]entity.Submission, error)
	IncreaseVotes(ctx context.Context, id string) error
	UpdateRankAndScore(ctx context.Context, id string, rank int64, score int64) error
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetByChallengeID(ctx context.Context, challengeID string) ([]entity.Submission, error) {
	result := []entity.Submission{}
	err := xcontext.DB(ctx).
		Where("challenge_id=?", challengeID).
		Order("submitted_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) GetList(
	ctx context.Context, challengeID string, offset, limit int,
) ([]entity.Submission, error) {
	result := []entity.Submission{}
	err := xcontext.DB(ctx).
		Where("challenge_id=?", challengeID).
		Offset(offset).Limit(limit).
		Order("submitted_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IncreaseVotes bumps the votes counter with a store-side expression, so
// concurrent voters never lose an update to read-modify-write.
func (r *submissionRepository) IncreaseVotes(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=?", id).
		Update("votes", gorm.Expr("votes+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("row not found")
	}

	return nil
}

func (r *submissionRepository) UpdateRankAndScore(ctx context.Context, id string, rank int64, score int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=?", id).
		Updates(map[string]any{"rank": rank, "score": score}).Error
}
