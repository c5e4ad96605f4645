package repository

import (
	"context"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
)

type ChallengeFilter struct {
	EventID string
	Status  []entity.ChallengeStatus
	Offset  int
	Limit   int
}

type ChallengeRepository interface {
	Create(ctx context.Context, data *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Challenge, error)
	GetList(ctx context.Context, filter ChallengeFilter) ([]entity.Challenge, error)
	GetExpiredUpcoming(ctx context.Context) ([]entity.Challenge, error)
	UpdateStatus(ctx context.Context, id string, status entity.ChallengeStatus) error
}

type challengeRepository struct{}

func NewChallengeRepository() *challengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, data *entity.Challenge) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	var result entity.Challenge
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *challengeRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetList(ctx context.Context, filter ChallengeFilter) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	tx := xcontext.DB(ctx).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Order("start_date ASC")

	if filter.EventID != "" {
		tx = tx.Where("event_id=?", filter.EventID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetExpiredUpcoming returns upcoming challenges whose start date has
// already passed. The cron sweep flips them to active.
func (r *challengeRepository) GetExpiredUpcoming(ctx context.Context) ([]entity.Challenge, error) {
	result := []entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("status=? AND start_date <= ?", entity.ChallengeUpcoming, time.Now()).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) UpdateStatus(ctx context.Context, id string, status entity.ChallengeStatus) error {
	return xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id=?", id).
		Update("status", status).Error
}
