package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/model"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/athlonhq/backend/pkg/dateutil"
	"github.com/athlonhq/backend/pkg/pubsub"
	"github.com/athlonhq/backend/pkg/xcontext"
)

// ActivateChallengesCronJob flips upcoming challenges to active once
// their start date has passed. Participation also activates lazily, so
// this sweep only matters for challenges nobody has joined yet.
type ActivateChallengesCronJob struct {
	challengeRepo repository.ChallengeRepository
	publisher     pubsub.Publisher
}

func NewActivateChallengesCronJob(
	challengeRepo repository.ChallengeRepository,
	publisher pubsub.Publisher,
) *ActivateChallengesCronJob {
	return &ActivateChallengesCronJob{
		challengeRepo: challengeRepo,
		publisher:     publisher,
	}
}

func (job *ActivateChallengesCronJob) Do(ctx context.Context) {
	challenges, err := job.challengeRepo.GetExpiredUpcoming(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired upcoming challenges: %v", err)
		return
	}

	for i := range challenges {
		challenge := challenges[i]
		if !challenge.Status.CanTransitionTo(entity.ChallengeActive) {
			continue
		}

		err := job.challengeRepo.UpdateStatus(ctx, challenge.ID, entity.ChallengeActive)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot activate challenge %s: %v", challenge.ID, err)
			continue
		}

		b, err := json.Marshal(model.ChallengeChanged{
			Kind:        model.ChangeChallengeActivated,
			EventID:     challenge.EventID,
			ChallengeID: challenge.ID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal change event: %v", err)
			continue
		}

		err = job.publisher.Publish(ctx, model.ChallengeChangeTopic, &pubsub.Pack{
			Key: []byte(challenge.EventID),
			Msg: b,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish change event: %v", err)
		}
	}
}

func (job *ActivateChallengesCronJob) RunNow() bool {
	return true
}

func (job *ActivateChallengesCronJob) Next() time.Time {
	// Start dates always fall on a day boundary, but run hourly to pick
	// up rows created after the last sweep.
	next := time.Now().Add(time.Hour)
	if dateutil.NextDay(time.Now()).Before(next) {
		return dateutil.NextDay(time.Now())
	}

	return next
}
