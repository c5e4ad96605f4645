package scoreboard

import (
	"math"
	"time"

	"github.com/athlonhq/backend/internal/entity"
	"golang.org/x/exp/slices"
)

const (
	pointsPerVote    = 10
	maxEarlyBonus    = 20
	richContentBonus = 5
	richContentLen   = 50
	mediaBonus       = 10
)

// RankChange values reported per entry. There is no persisted snapshot of
// a previous leaderboard to diff against, so every entry reports ChangeNew.
const ChangeNew = "new"

type Entry struct {
	SubmissionID string
	UserID       string
	UserName     string
	UserAvatar   string
	SubmittedAt  time.Time
	Votes        uint64
	Score        int64
	Rank         int
	Change       string
}

// Score computes the deterministic score of a submission against its
// challenge window: ten points per vote, an early-submission bonus that
// decays linearly from 20 to 0 across the window, plus flat bonuses for
// rich content and attached media. The result is rounded to the nearest
// integer.
func Score(submission *entity.Submission, challenge *entity.Challenge) int64 {
	score := float64(submission.Votes) * pointsPerVote

	duration := challenge.EndDate.Sub(challenge.StartDate)
	if duration > 0 {
		delay := submission.SubmittedAt.Sub(challenge.StartDate)
		early := maxEarlyBonus - (delay.Seconds()/duration.Seconds())*maxEarlyBonus
		score += math.Max(0, early)
	}

	if len(submission.Content) > richContentLen {
		score += richContentBonus
	}

	if submission.MediaURL != "" {
		score += mediaBonus
	}

	return int64(math.Round(score))
}

// Build computes the leaderboard of a challenge from its submissions. It
// is a pure function of its inputs: no store access, no side effects.
// Ties break on earlier submission, then on submission id.
func Build(challenge *entity.Challenge, submissions []entity.Submission) []Entry {
	entries := make([]Entry, 0, len(submissions))
	for i := range submissions {
		s := &submissions[i]
		entries = append(entries, Entry{
			SubmissionID: s.ID,
			UserID:       s.UserID,
			UserName:     s.UserName,
			UserAvatar:   s.UserAvatar,
			SubmittedAt:  s.SubmittedAt,
			Votes:        s.Votes,
			Score:        Score(s, challenge),
			Change:       ChangeNew,
		})
	}

	slices.SortStableFunc(entries, func(a, b Entry) bool {
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}

		return a.SubmissionID < b.SubmissionID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
