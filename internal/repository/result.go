package repository

import (
	"context"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
)

type ResultRepository interface {
	Create(ctx context.Context, data *entity.ChallengeResult) error
	GetByChallengeID(ctx context.Context, challengeID string) ([]entity.ChallengeResult, error)
}

type resultRepository struct{}

func NewResultRepository() *resultRepository {
	return &resultRepository{}
}

func (r *resultRepository) Create(ctx context.Context, data *entity.ChallengeResult) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *resultRepository) GetByChallengeID(ctx context.Context, challengeID string) ([]entity.ChallengeResult, error) {
	result := []entity.ChallengeResult{}
	err := xcontext.DB(ctx).
		Where("challenge_id=?", challengeID).
		Order("`rank` ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
