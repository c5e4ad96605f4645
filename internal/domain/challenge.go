package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/athlonhq/backend/config"
	"github.com/athlonhq/backend/internal/common"
	"github.com/athlonhq/backend/internal/domain/scoreboard"
	"github.com/athlonhq/backend/internal/domain/search"
	"github.com/athlonhq/backend/internal/domain/statistic"
	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/dateutil"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/athlonhq/backend/pkg/xredis"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ChallengeDomain interface {
	Generate(ctx context.Context, req *model.GenerateChallengesRequest) (*model.GenerateChallengesResponse, error)
	Get(ctx context.Context, req *model.GetChallengeRequest) (*model.GetChallengeResponse, error)
	GetList(ctx context.Context, req *model.GetListChallengeRequest) (*model.GetListChallengeResponse, error)
	GetFeatured(ctx context.Context, req *model.GetFeaturedChallengesRequest) (*model.GetFeaturedChallengesResponse, error)
	Activate(ctx context.Context, req *model.ActivateChallengeRequest) (*model.ActivateChallengeResponse, error)
	End(ctx context.Context, req *model.EndChallengeRequest) (*model.EndChallengeResponse, error)
	GetResults(ctx context.Context, req *model.GetChallengeResultsRequest) (*model.GetChallengeResultsResponse, error)
	Search(ctx context.Context, req *model.SearchChallengeRequest) (*model.SearchChallengeResponse, error)
}

type challengeDomain struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
	submissionRepo  repository.SubmissionRepository
	resultRepo      repository.ResultRepository
	eventRepo       repository.EventRepository
	templates       config.ChallengeTemplates
	leaderboard     statistic.Leaderboard
	redisClient     xredis.Client
	publisher       pubsub.Publisher
	searchCaller    search.Caller
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
	submissionRepo repository.SubmissionRepository,
	resultRepo repository.ResultRepository,
	eventRepo repository.EventRepository,
	templates config.ChallengeTemplates,
	leaderboard statistic.Leaderboard,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
	searchCaller search.Caller,
) *challengeDomain {
	return &challengeDomain{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		resultRepo:      resultRepo,
		eventRepo:       eventRepo,
		templates:       templates,
		leaderboard:     leaderboard,
		redisClient:     redisClient,
		publisher:       publisher,
		searchCaller:    searchCaller,
	}
}

func (d *challengeDomain) Generate(
	ctx context.Context, req *model.GenerateChallengesRequest,
) (*model.GenerateChallengesResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	sport := req.Sport
	if sport == "" {
		sport = event.Sport
	}

	cfg := xcontext.Configs(ctx).Challenge
	types := d.templates.TypesForSport(sport)
	if len(types) > cfg.MaxTypesPerEvent {
		types = types[:cfg.MaxTypesPerEvent]
	}

	// The first challenge opens at the next midnight plus the lead time;
	// each following one is staggered by a fixed number of days.
	base := dateutil.BeginningOfDay(time.Now().Add(cfg.LeadTime))

	challenges := make([]*entity.Challenge, 0, len(types))
	ids := make([]string, 0, len(types))
	for i, typeName := range types {
		challengeType, err := enumChallengeType(typeName)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Invalid challenge type in templates: %v", err)
			return nil, errorx.Unknown
		}

		title, description, err := d.templates.Render(typeName, sport)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot render challenge template: %v", err)
			return nil, errorx.Unknown
		}

		maxParticipants := cfg.IndividualCap
		if challengeType == entity.ChallengeTeamCollaboration {
			maxParticipants = cfg.TeamCap
		}

		startDate := base.AddDate(0, 0, i*cfg.StaggerDays)
		challenge := &entity.Challenge{
			Base:            entity.Base{ID: uuid.NewString()},
			EventID:         event.ID,
			Type:            challengeType,
			Status:          entity.ChallengeUpcoming,
			Title:           title,
			Description:     description,
			Sport:           sport,
			StartDate:       startDate,
			EndDate:         startDate.Add(cfg.Duration),
			MaxParticipants: sql.NullInt64{Valid: true, Int64: int64(maxParticipants)},
			Rewards: entity.Array[entity.Reward]{
				{Type: entity.PointsReward, Data: entity.Map{"points": cfg.BasePoints}},
				entity.BonusRewardOf[challengeType],
			},
		}

		challenges = append(challenges, challenge)
		ids = append(ids, challenge.ID)
	}

	// All creates commit or roll back together, so a failing create can
	// never leave a partial batch behind.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for _, challenge := range challenges {
		if err := d.challengeRepo.Create(ctx, challenge); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	// Indexing failures must not fail the generation, the challenges are
	// committed already.
	var indexGroup errgroup.Group
	for _, challenge := range challenges {
		challenge := challenge
		indexGroup.Go(func() error {
			return d.searchCaller.Index(search.ChallengeDoc, challenge.ID, search.ChallengeData{
				Title:       challenge.Title,
				Description: challenge.Description,
				Sport:       challenge.Sport,
			})
		})
	}

	if err := indexGroup.Wait(); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index generated challenges: %v", err)
	}

	d.publishChange(ctx, model.ChallengeChanged{
		Kind:    model.ChangeChallengeGenerated,
		EventID: event.ID,
	})

	// Re-fetch so callers observe the store-assigned fields.
	created, err := d.challengeRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created challenges: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.Challenge{}
	for i := range created {
		resp = append(resp, model.ConvertChallenge(&created[i], 0))
	}

	return &model.GenerateChallengesResponse{Challenges: resp}, nil
}

func (d *challengeDomain) Get(
	ctx context.Context, req *model.GetChallengeRequest,
) (*model.GetChallengeResponse, error) {
	challenge, err := d.challengeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.participantRepo.Count(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetChallengeResponse(model.ConvertChallenge(challenge, count))
	return &resp, nil
}

func (d *challengeDomain) GetList(
	ctx context.Context, req *model.GetListChallengeRequest,
) (*model.GetListChallengeResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	filter := repository.ChallengeFilter{
		EventID: req.EventID,
		Offset:  req.Offset,
		Limit:   req.Limit,
	}

	if req.Status != "" {
		status, err := enumChallengeStatus(req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status filter")
		}

		filter.Status = []entity.ChallengeStatus{status}
	}

	challenges, err := d.challengeRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenge list: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetListChallengeResponse{
		Challenges: d.convertWithCounts(ctx, challenges),
	}, nil
}

// GetFeatured lists active and upcoming challenges, re-sorted active
// first and by participant count descending, then truncated. The result
// is cached in redis for a short TTL since it backs the landing page.
func (d *challengeDomain) GetFeatured(
	ctx context.Context, req *model.GetFeaturedChallengesRequest,
) (*model.GetFeaturedChallengesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	cached := []model.Challenge{}
	if err := d.redisClient.GetObj(ctx, common.RedisKeyFeaturedChallenges(), &cached); err == nil {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return &model.GetFeaturedChallengesResponse{Challenges: cached}, nil
	}

	challenges, err := d.challengeRepo.GetList(ctx, repository.ChallengeFilter{
		Status: []entity.ChallengeStatus{entity.ChallengeActive, entity.ChallengeUpcoming},
		Limit:  xcontext.Configs(ctx).ApiServer.MaxLimit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get featured challenges: %v", err)
		return nil, errorx.Unknown
	}

	converted := d.convertWithCounts(ctx, challenges)
	slices.SortStableFunc(converted, func(a, b model.Challenge) bool {
		aActive := a.Status == string(entity.ChallengeActive)
		bActive := b.Status == string(entity.ChallengeActive)
		if aActive != bActive {
			return aActive
		}

		return a.ParticipantCount > b.ParticipantCount
	})

	ttl := xcontext.Configs(ctx).Challenge.FeaturedCacheTTL
	if err := d.redisClient.SetObj(ctx, common.RedisKeyFeaturedChallenges(), converted, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache featured challenges: %v", err)
	}

	if len(converted) > limit {
		converted = converted[:limit]
	}

	return &model.GetFeaturedChallengesResponse{Challenges: converted}, nil
}

// Activate explicitly flips an upcoming challenge to active before any
// submission arrives.
func (d *challengeDomain) Activate(
	ctx context.Context, req *model.ActivateChallengeRequest,
) (*model.ActivateChallengeResponse, error) {
	challenge, err := d.challengeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if !challenge.Status.CanTransitionTo(entity.ChallengeActive) {
		return nil, errorx.New(errorx.ChallengeCompleted, "Challenge cannot be activated anymore")
	}

	if err := d.challengeRepo.UpdateStatus(ctx, challenge.ID, entity.ChallengeActive); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge status: %v", err)
		return nil, errorx.Unknown
	}

	d.publishChange(ctx, model.ChallengeChanged{
		Kind:        model.ChangeChallengeActivated,
		EventID:     challenge.EventID,
		ChallengeID: challenge.ID,
	})

	return &model.ActivateChallengeResponse{}, nil
}

// End finalizes a challenge: computes the leaderboard, persists every
// submission's final rank and score, records the top three winners, and
// credits their points. This is the only explicit way a challenge
// completes; expiry alone never completes one.
func (d *challengeDomain) End(
	ctx context.Context, req *model.EndChallengeRequest,
) (*model.EndChallengeResponse, error) {
	challenge, err := d.challengeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if challenge.Status == entity.ChallengeCompleted {
		return nil, errorx.New(errorx.ChallengeCompleted, "Challenge has already completed")
	}

	submissions, err := d.submissionRepo.GetByChallengeID(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	entries := scoreboard.Build(challenge, submissions)
	if len(entries) == 0 {
		return nil, errorx.New(errorx.NoParticipants, "Challenge has no submission to rank")
	}

	totalParticipants, err := d.participantRepo.Count(ctx, challenge.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	winners := entries
	if len(winners) > 3 {
		winners = winners[:3]
	}

	completedAt := time.Now()
	results := make([]*entity.ChallengeResult, 0, len(winners))
	for _, winner := range winners {
		results = append(results, &entity.ChallengeResult{
			Base:             entity.Base{ID: uuid.NewString()},
			ChallengeID:      challenge.ID,
			UserID:           winner.UserID,
			UserName:         winner.UserName,
			Rank:             winner.Rank,
			Score:            winner.Score,
			TotalParticipant: int(totalParticipants),
			Rewards:          challenge.Rewards,
			CompletedAt:      completedAt,
		})
	}

	points := basePointsOf(ctx, challenge.Rewards)

	// Status flip, rank/score write-back, winner records, and point
	// grants land in one transaction: a crash can never leave some
	// submissions finalized and others not.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.challengeRepo.UpdateStatus(ctx, challenge.ID, entity.ChallengeCompleted); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge status: %v", err)
		return nil, errorx.Unknown
	}

	for _, entry := range entries {
		err := d.submissionRepo.UpdateRankAndScore(ctx, entry.SubmissionID, int64(entry.Rank), entry.Score)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write back rank and score: %v", err)
			return nil, errorx.Unknown
		}
	}

	for _, result := range results {
		if err := d.resultRepo.Create(ctx, result); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create challenge result: %v", err)
			return nil, errorx.Unknown
		}

		if points > 0 {
			err := d.participantRepo.IncreasePoints(ctx, challenge.ID, result.UserID, points)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot credit points: %v", err)
				return nil, errorx.Unknown
			}
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if points > 0 {
		for _, result := range results {
			err := d.leaderboard.IncreasePoints(ctx, challenge.EventID, result.UserID, points)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot update event leaderboard: %v", err)
			}
		}
	}

	common.PromCounters[common.ChallengeCompletedTotal].
		WithLabelValues(string(challenge.Type)).Inc()

	d.publishChange(ctx, model.ChallengeChanged{
		Kind:        model.ChangeChallengeCompleted,
		EventID:     challenge.EventID,
		ChallengeID: challenge.ID,
	})

	resp := []model.ChallengeResult{}
	for _, result := range results {
		resp = append(resp, model.ConvertChallengeResult(result))
	}

	return &model.EndChallengeResponse{Results: resp}, nil
}

func (d *challengeDomain) GetResults(
	ctx context.Context, req *model.GetChallengeResultsRequest,
) (*model.GetChallengeResultsResponse, error) {
	results, err := d.resultRepo.GetByChallengeID(ctx, req.ChallengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenge results: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.ChallengeResult{}
	for i := range results {
		resp = append(resp, model.ConvertChallengeResult(&results[i]))
	}

	return &model.GetChallengeResultsResponse{Results: resp}, nil
}

func (d *challengeDomain) Search(
	ctx context.Context, req *model.SearchChallengeRequest,
) (*model.SearchChallengeResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty query")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	ids, err := d.searchCaller.Search(search.ChallengeDoc, req.Q, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search challenges: %v", err)
		return nil, errorx.Unknown
	}

	challenges, err := d.challengeRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get searched challenges: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SearchChallengeResponse{
		Challenges: d.convertWithCounts(ctx, challenges),
	}, nil
}

func (d *challengeDomain) convertWithCounts(
	ctx context.Context, challenges []entity.Challenge,
) []model.Challenge {
	ids := make([]string, 0, len(challenges))
	for i := range challenges {
		ids = append(ids, challenges[i].ID)
	}

	counts := map[string]int64{}
	if len(ids) > 0 {
		var err error
		counts, err = d.participantRepo.CountByChallengeIDs(ctx, ids)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot count participants: %v", err)
			counts = map[string]int64{}
		}
	}

	result := []model.Challenge{}
	for i := range challenges {
		result = append(result, model.ConvertChallenge(&challenges[i], counts[challenges[i].ID]))
	}

	return result
}

func (d *challengeDomain) publishChange(ctx context.Context, change model.ChallengeChanged) {
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

type pointsRewardData struct {
	Points uint64 `mapstructure:"points"`
}

// basePointsOf extracts the points value of the base points reward.
func basePointsOf(ctx context.Context, rewards []entity.Reward) uint64 {
	for _, reward := range rewards {
		if reward.Type != entity.PointsReward {
			continue
		}

		data := pointsRewardData{}
		if err := mapstructure.WeakDecode(reward.Data, &data); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot decode points reward: %v", err)
			return 0
		}

		return data.Points
	}

	return 0
}
