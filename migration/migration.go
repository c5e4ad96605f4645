package migration

import (
	"context"
	"errors"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// migrators are applied in order. Never remove or reorder entries, only
// append.
var migrators = []func(context.Context) error{
	migrate0000,
}

func Migrate(ctx context.Context) error {
	if !xcontext.DB(ctx).Migrator().HasTable(&entity.Migration{}) {
		if err := xcontext.DB(ctx).Migrator().CreateTable(&entity.Migration{}); err != nil {
			return err
		}
	}

	current := -1
	var last entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		current = last.Version
	}

	for version := current + 1; version < len(migrators); version++ {
		if err := migrators[version](ctx); err != nil {
			return err
		}

		record := entity.Migration{Version: version}
		if err := xcontext.DB(ctx).Create(&record).Error; err != nil {
			return err
		}

		xcontext.Logger(ctx).Infof("Applied migration version %d", version)
	}

	return nil
}

// AutoMigrate syncs the schema directly from the entities. When this is
// called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Event{},
		&entity.Challenge{},
		&entity.ChallengeParticipant{},
		&entity.Submission{},
		&entity.SubmissionVote{},
		&entity.ChallengeResult{},
		&entity.Migration{},
	)
}
