package entity

import (
	"testing"
	"time"

	"github.com/athlonhq/backend/pkg/enum"
	"github.com/stretchr/testify/require"
)

func Test_BonusRewardOf_coversEveryChallengeType(t *testing.T) {
	for _, s := range enum.Enum(ChallengeType("")) {
		bonus, ok := BonusRewardOf[s]
		require.True(t, ok, "no bonus reward for challenge type %s", s)
		require.NotEmpty(t, bonus.Type)
		require.NotEmpty(t, bonus.Data["name"])
	}
}

func Test_ChallengeStatus_CanTransitionTo(t *testing.T) {
	require.True(t, ChallengeUpcoming.CanTransitionTo(ChallengeActive))
	require.True(t, ChallengeUpcoming.CanTransitionTo(ChallengeCompleted))
	require.True(t, ChallengeActive.CanTransitionTo(ChallengeCompleted))

	require.False(t, ChallengeActive.CanTransitionTo(ChallengeUpcoming))
	require.False(t, ChallengeCompleted.CanTransitionTo(ChallengeActive))
	require.False(t, ChallengeCompleted.CanTransitionTo(ChallengeUpcoming))
	require.False(t, ChallengeCompleted.CanTransitionTo(ChallengeCompleted))
}

func Test_Challenge_IsInActiveWindow(t *testing.T) {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	c := Challenge{StartDate: start, EndDate: start.AddDate(0, 0, 7)}

	require.False(t, c.IsInActiveWindow(start.Add(-time.Second)))
	require.True(t, c.IsInActiveWindow(start))
	require.True(t, c.IsInActiveWindow(start.AddDate(0, 0, 3)))
	require.False(t, c.IsInActiveWindow(c.EndDate))
	require.False(t, c.IsInActiveWindow(c.EndDate.Add(time.Hour)))
}
