package statistic

import (
	"context"

	"github.com/athlonhq/backend/internal/common"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/athlonhq/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// Leaderboard ranks users of an event by the points earned across all of
// its challenges. The ranking lives in a redis sorted set that is rebuilt
// from the database on a cache miss and incrementally updated on every
// point grant.
type Leaderboard interface {
	GetEventLeaderboard(ctx context.Context, eventID string, offset, limit int) ([]model.EventLeaderboardEntry, error)
	GetRank(ctx context.Context, userID, eventID string) (uint64, error)
	IncreasePoints(ctx context.Context, eventID, userID string, points uint64) error
}

type leaderboard struct {
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	redisClient     xredis.Client
}

func New(
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		participantRepo: participantRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
	}
}

func (l *leaderboard) GetEventLeaderboard(
	ctx context.Context, eventID string, offset, limit int,
) ([]model.EventLeaderboardEntry, error) {
	key := common.RedisKeyEventLeaderboard(eventID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx, eventID); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.EventLeaderboardEntry{}
	userIDs := []string{}
	for i, z := range results {
		userID := z.Member.(string)
		userIDs = append(userIDs, userID)
		entries = append(entries, model.EventLeaderboardEntry{
			Rank:   uint64(offset + i + 1),
			UserID: userID,
			Points: uint64(z.Score),
		})
	}

	users, err := l.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users of leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	nameByID := map[string]string{}
	for _, u := range users {
		nameByID[u.ID] = u.Name
	}

	for i := range entries {
		entries[i].UserName = nameByID[entries[i].UserID]
	}

	return entries, nil
}

func (l *leaderboard) GetRank(ctx context.Context, userID, eventID string) (uint64, error) {
	key := common.RedisKeyEventLeaderboard(eventID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	if !ok {
		if err := l.loadFromDB(ctx, eventID); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

// IncreasePoints bumps the user's score in the event sorted set. If the
// set has not been built yet there is nothing to update; the next read
// rebuilds it from the database, already including this grant.
func (l *leaderboard) IncreasePoints(ctx context.Context, eventID, userID string, points uint64) error {
	key := common.RedisKeyEventLeaderboard(eventID)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, int64(points), userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) loadFromDB(ctx context.Context, eventID string) error {
	totals, err := l.participantRepo.GetTotalPointsByEvent(ctx, eventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load points from database: %v", err)
		return errorx.Unknown
	}

	key := common.RedisKeyEventLeaderboard(eventID)
	for userID, points := range totals {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: userID, Score: float64(points)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
