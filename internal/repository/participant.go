package repository

import (
	"context"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/athlonhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(ctx context.Context, data *entity.ChallengeParticipant) error
	Get(ctx context.Context, challengeID, userID string) (*entity.ChallengeParticipant, error)
	Count(ctx context.Context, challengeID string) (int64, error)
	CountByChallengeIDs(ctx context.Context, challengeIDs []string) (map[string]int64, error)
	IncreasePoints(ctx context.Context, challengeID, userID string, points uint64) error
	GetTotalPointsByEvent(ctx context.Context, eventID string) (map[string]uint64, error)
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Create(ctx context.Context, data *entity.ChallengeParticipant) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *participantRepository) Get(
	ctx context.Context, challengeID, userID string,
) (*entity.ChallengeParticipant, error) {
	var result entity.ChallengeParticipant
	err := xcontext.DB(ctx).
		Where("challenge_id=? AND user_id=?", challengeID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) Count(ctx context.Context, challengeID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ChallengeParticipant{}).
		Where("challenge_id=?", challengeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *participantRepository) CountByChallengeIDs(
	ctx context.Context, challengeIDs []string,
) (map[string]int64, error) {
	var rows []struct {
		ChallengeID string
		Count       int64
	}

	err := xcontext.DB(ctx).
		Model(&entity.ChallengeParticipant{}).
		Select("challenge_id, COUNT(*) as count").
		Where("challenge_id IN (?)", challengeIDs).
		Group("challenge_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int64{}
	for _, row := range rows {
		result[row.ChallengeID] = row.Count
	}

	return result, nil
}

func (r *participantRepository) IncreasePoints(
	ctx context.Context, challengeID, userID string, points uint64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.ChallengeParticipant{}).
		Where("challenge_id=? AND user_id=?", challengeID, userID).
		Update("points", gorm.Expr("points+?", points)).Error
}

// GetTotalPointsByEvent sums participant points per user across all
// challenges of an event. Used to rebuild the event leaderboard on a
// cache miss.
func (r *participantRepository) GetTotalPointsByEvent(
	ctx context.Context, eventID string,
) (map[string]uint64, error) {
	var rows []struct {
		UserID string
		Total  uint64
	}

	err := xcontext.DB(ctx).
		Model(&entity.ChallengeParticipant{}).
		Select("challenge_participants.user_id, SUM(challenge_participants.points) as total").
		Joins("join challenges on challenges.id=challenge_participants.challenge_id").
		Where("challenges.event_id=?", eventID).
		Group("challenge_participants.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]uint64{}
	for _, row := range rows {
		result[row.UserID] = row.Total
	}

	return result, nil
}
