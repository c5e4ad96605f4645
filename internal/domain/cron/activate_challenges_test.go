package cron

import (
	"context"
	"testing"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_ActivateChallengesCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()

	due, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status:    entity.ChallengeUpcoming,
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	notDue, err := testutil.SampleChallenge(ctx, &entity.Challenge{
		Status:    entity.ChallengeUpcoming,
		StartDate: time.Now().Add(time.Hour),
		EndDate:   time.Now().AddDate(0, 0, 8),
	})
	require.NoError(t, err)

	published := 0
	publisher := &testutil.MockPublisher{
		PublishFunc: func(context.Context, string, *pubsub.Pack) error {
			published++
			return nil
		},
	}

	challengeRepo := repository.NewChallengeRepository()
	job := NewActivateChallengesCronJob(challengeRepo, publisher)
	job.Do(ctx)

	got, err := challengeRepo.GetByID(ctx, due.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeActive, got.Status)

	got, err = challengeRepo.GetByID(ctx, notDue.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeUpcoming, got.Status)

	require.Equal(t, 1, published)

	// Running the sweep again finds nothing upcoming and past due.
	job.Do(ctx)
	require.Equal(t, 1, published)
}
