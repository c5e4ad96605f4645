package scoreboard

import (
	"testing"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func sevenDayChallenge() *entity.Challenge {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Challenge{
		Base:      entity.Base{ID: "challenge1"},
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 7),
	}
}

func Test_Score_submittedAtStart(t *testing.T) {
	challenge := sevenDayChallenge()
	submission := &entity.Submission{
		Votes:       3,
		Content:     "this content is definitely longer than fifty characters in total",
		MediaURL:    "https://example.com/clip.mp4",
		SubmittedAt: challenge.StartDate,
	}

	// 3x10 votes + 20 early + 5 content + 10 media
	require.EqualValues(t, 65, Score(submission, challenge))
}

func Test_Score_submittedAtEnd(t *testing.T) {
	challenge := sevenDayChallenge()
	submission := &entity.Submission{
		Votes:       3,
		Content:     "this content is definitely longer than fifty characters in total",
		MediaURL:    "https://example.com/clip.mp4",
		SubmittedAt: challenge.EndDate,
	}

	// The early bonus decays to zero at the end of the window.
	require.EqualValues(t, 45, Score(submission, challenge))
}

func Test_Score_earlyBonusDecaysLinearly(t *testing.T) {
	challenge := sevenDayChallenge()
	halfway := challenge.StartDate.Add(challenge.EndDate.Sub(challenge.StartDate) / 2)
	submission := &entity.Submission{SubmittedAt: halfway}

	require.EqualValues(t, 10, Score(submission, challenge))
}

func Test_Score_lateSubmissionClampedAtZero(t *testing.T) {
	challenge := sevenDayChallenge()
	submission := &entity.Submission{
		Votes:       1,
		SubmittedAt: challenge.EndDate.AddDate(0, 0, 1),
	}

	require.EqualValues(t, 10, Score(submission, challenge))
}

func Test_Score_shortContentGetsNoBonus(t *testing.T) {
	challenge := sevenDayChallenge()
	submission := &entity.Submission{
		Content:     "short",
		SubmittedAt: challenge.EndDate,
	}

	require.EqualValues(t, 0, Score(submission, challenge))
}

func Test_Build_ordersByScoreThenSubmittedAt(t *testing.T) {
	challenge := sevenDayChallenge()
	submissions := []entity.Submission{
		{
			Base:        entity.Base{ID: "sub1"},
			UserID:      "user1",
			Votes:       1,
			SubmittedAt: challenge.EndDate,
		},
		{
			Base:        entity.Base{ID: "sub2"},
			UserID:      "user2",
			Votes:       5,
			SubmittedAt: challenge.EndDate,
		},
		{
			// Same score as sub4 but submitted later.
			Base:        entity.Base{ID: "sub3"},
			UserID:      "user3",
			Votes:       3,
			SubmittedAt: challenge.EndDate.Add(-time.Second),
		},
		{
			Base:        entity.Base{ID: "sub4"},
			UserID:      "user4",
			Votes:       3,
			SubmittedAt: challenge.EndDate.Add(-time.Minute),
		},
	}

	entries := Build(challenge, submissions)
	require.Len(t, entries, 4)
	require.Equal(t, "sub2", entries[0].SubmissionID)
	require.Equal(t, "sub4", entries[1].SubmissionID)
	require.Equal(t, "sub3", entries[2].SubmissionID)
	require.Equal(t, "sub1", entries[3].SubmissionID)

	for i, entry := range entries {
		require.Equal(t, i+1, entry.Rank)
		require.Equal(t, ChangeNew, entry.Change)
	}
}

func Test_Build_isPure(t *testing.T) {
	challenge := sevenDayChallenge()
	submissions := []entity.Submission{
		{Base: entity.Base{ID: "sub1"}, Votes: 2, SubmittedAt: challenge.StartDate},
		{Base: entity.Base{ID: "sub2"}, Votes: 2, SubmittedAt: challenge.StartDate},
		{Base: entity.Base{ID: "sub3"}, Votes: 7, SubmittedAt: challenge.EndDate},
	}

	first := Build(challenge, submissions)
	second := Build(challenge, submissions)
	require.Equal(t, first, second)
}
