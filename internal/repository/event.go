package repository

import (
	"context"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
)

type EventRepository interface {
	Create(ctx context.Context, data *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Event, error)
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, data *entity.Event) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Event, error) {
	result := []entity.Event{}
	err := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("start_time DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
