package migration

import (
	"context"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
)

// migrate0000 creates the database with the latest version.
func migrate0000(ctx context.Context) error {
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
