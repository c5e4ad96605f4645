package testutil

import (
	"context"
	"database/sql"
	"reflect"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/internal/repository"
	"github.com/google/uuid"
)

// SampleUser creates a user with randomized fields. Non-zero fields of
// init overwrite the sample before it is persisted.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	sample := &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      uuid.NewString(),
		AvatarURL: "https://example.com/avatar.png",
		Sport:     "football",
		Role:      entity.UserRole,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleEvent(ctx context.Context, init *entity.Event) (entity.Event, error) {
	sample := &entity.Event{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      uuid.NewString(),
		Sport:     "football",
		StartTime: time.Now(),
		EndTime:   time.Now().AddDate(0, 1, 0),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewEventRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleChallenge(ctx context.Context, init *entity.Challenge) (entity.Challenge, error) {
	sample := &entity.Challenge{
		Base:            entity.Base{ID: uuid.NewString()},
		Type:            entity.ChallengeSkillShowcase,
		Status:          entity.ChallengeActive,
		Title:           uuid.NewString(),
		Sport:           "football",
		StartDate:       time.Now().Add(-time.Hour),
		EndDate:         time.Now().Add(-time.Hour).AddDate(0, 0, 7),
		MaxParticipants: sql.NullInt64{Valid: true, Int64: 100},
		Rewards: entity.Array[entity.Reward]{
			{Type: entity.PointsReward, Data: entity.Map{"points": float64(100)}},
		},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewChallengeRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func SampleSubmission(ctx context.Context, init *entity.Submission) (entity.Submission, error) {
	sample := &entity.Submission{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      uuid.NewString(),
		UserName:    uuid.NewString(),
		Content:     "sample submission content",
		SubmittedAt: time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewSubmissionRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !reflect.DeepEqual(overwriteField.Interface(), reflect.Zero(overwriteField.Type()).Interface()) {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
