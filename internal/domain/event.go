package domain

import (
	"context"
	"errors"
	"time"

	"github.com/athlonhq/backend/internal/domain/search"
	"github.com/athlonhq/backend/internal/domain/statistic"
	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventDomain interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Get(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error)
	GetList(ctx context.Context, req *model.GetListEventRequest) (*model.GetListEventResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetEventLeaderboardRequest) (*model.GetEventLeaderboardResponse, error)
	GetRank(ctx context.Context, req *model.GetEventRankRequest) (*model.GetEventRankResponse, error)
}

type eventDomain struct {
	eventRepo    repository.EventRepository
	leaderboard  statistic.Leaderboard
	searchCaller search.Caller
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	leaderboard statistic.Leaderboard,
	searchCaller search.Caller,
) *eventDomain {
	return &eventDomain{
		eventRepo:    eventRepo,
		leaderboard:  leaderboard,
		searchCaller: searchCaller,
	}
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty event name")
	}

	startTime, err := time.Parse(model.DefaultTimeLayout, req.StartTime)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid start time")
	}

	endTime, err := time.Parse(model.DefaultTimeLayout, req.EndTime)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid end time")
	}

	if !endTime.After(startTime) {
		return nil, errorx.New(errorx.BadRequest, "End time must be after start time")
	}

	event := &entity.Event{
		Base:        entity.Base{ID: uuid.NewString()},
		CreatedBy:   xcontext.RequestUserID(ctx),
		Name:        req.Name,
		Description: req.Description,
		Sport:       req.Sport,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	err = d.searchCaller.Index(search.EventDoc, event.ID, search.EventData{
		Name:        event.Name,
		Description: event.Description,
		Sport:       event.Sport,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index event %s: %v", event.ID, err)
	}

	return &model.CreateEventResponse{ID: event.ID}, nil
}

func (d *eventDomain) Get(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetEventResponse(model.ConvertEvent(event))
	return &resp, nil
}

func (d *eventDomain) GetList(
	ctx context.Context, req *model.GetListEventRequest,
) (*model.GetListEventResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	events, err := d.eventRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event list: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Event{}
	for i := range events {
		resp = append(resp, model.ConvertEvent(&events[i]))
	}

	return &model.GetListEventResponse{Events: resp}, nil
}

func (d *eventDomain) GetLeaderboard(
	ctx context.Context, req *model.GetEventLeaderboardRequest,
) (*model.GetEventLeaderboardResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	entries, err := d.leaderboard.GetEventLeaderboard(ctx, req.EventID, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetEventLeaderboardResponse{Entries: entries}, nil
}

func (d *eventDomain) GetRank(
	ctx context.Context, req *model.GetEventRankRequest,
) (*model.GetEventRankResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	rank, err := d.leaderboard.GetRank(ctx, userID, req.EventID)
	if err != nil {
		return nil, err
	}

	return &model.GetEventRankResponse{Rank: rank}, nil
}
