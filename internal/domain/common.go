package domain

import (
	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/enum"
)

func enumChallengeType(s string) (entity.ChallengeType, error) {
	return enum.ToEnum[entity.ChallengeType](s)
}

func enumChallengeStatus(s string) (entity.ChallengeStatus, error) {
	return enum.ToEnum[entity.ChallengeStatus](s)
}
