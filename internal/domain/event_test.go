package domain

import (
	"context"
	"testing"
	"time"

	"github.com/athlonhq/backend/internal/domain/statistic"
	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/errorx"
	"github.com/athlonhq/backend/pkg/testutil"
	"github.com/athlonhq/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newEventDomain() *eventDomain {
	return NewEventDomain(
		repository.NewEventRepository(),
		statistic.New(
			repository.NewParticipantRepository(),
			repository.NewUserRepository(),
			&testutil.MockRedisClient{},
		),
		&testutil.MockSearchCaller{},
	)
}

func Test_eventDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID("organizer")

	domain := newEventDomain()
	resp, err := domain.Create(ctx, &model.CreateEventRequest{
		Name:      "Summer League",
		Sport:     "football",
		StartTime: time.Now().Format(model.DefaultTimeLayout),
		EndTime:   time.Now().AddDate(0, 1, 0).Format(model.DefaultTimeLayout),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	got, err := domain.Get(ctx, &model.GetEventRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "Summer League", got.Name)
	require.Equal(t, "organizer", got.CreatedBy)
}

func Test_eventDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID("organizer")
	domain := newEventDomain()

	var errx errorx.Error

	_, err := domain.Create(ctx, &model.CreateEventRequest{
		StartTime: time.Now().Format(model.DefaultTimeLayout),
		EndTime:   time.Now().AddDate(0, 1, 0).Format(model.DefaultTimeLayout),
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateEventRequest{
		Name:      "Summer League",
		StartTime: "not-a-time",
		EndTime:   time.Now().Format(model.DefaultTimeLayout),
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// The window must not be empty or reversed.
	now := time.Now()
	_, err = domain.Create(ctx, &model.CreateEventRequest{
		Name:      "Summer League",
		StartTime: now.Format(model.DefaultTimeLayout),
		EndTime:   now.Format(model.DefaultTimeLayout),
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_eventDomain_GetRank_DefaultsToRequester(t *testing.T) {
	ctx := testutil.MockContext()
	event, err := testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	challenge, err := testutil.SampleChallenge(ctx, &entity.Challenge{EventID: event.ID})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	participantRepo := repository.NewParticipantRepository()
	err = participantRepo.Create(ctx, &entity.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      user.ID,
		Points:      100,
	})
	require.NoError(t, err)

	redisClient := &testutil.MockRedisClient{}
	members := map[string]float64{}
	built := false
	redisClient.ExistFunc = func(_ context.Context, _ string) (bool, error) {
		return built, nil
	}
	redisClient.ZAddFunc = func(_ context.Context, _ string, z redis.Z) error {
		built = true
		members[z.Member.(string)] = z.Score
		return nil
	}
	redisClient.ZRevRankFunc = func(_ context.Context, _ string, member string) (uint64, error) {
		if _, ok := members[member]; !ok {
			return 0, redis.Nil
		}
		return 0, nil
	}

	domain := NewEventDomain(
		repository.NewEventRepository(),
		statistic.New(participantRepo, repository.NewUserRepository(), redisClient),
		&testutil.MockSearchCaller{},
	)

	resp, err := domain.GetRank(
		xcontext.WithRequestUserID(ctx, user.ID),
		&model.GetEventRankRequest{EventID: event.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.Rank)
}
