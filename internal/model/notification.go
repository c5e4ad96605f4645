package model

// ChallengeChangeTopic is the kafka topic carrying ChallengeChanged
// packs, keyed by event id.
const ChallengeChangeTopic = "challenge_changes"

// Change kinds published to the challenge change-event topic after a
// successful commit. The ws proxy re-queries state on receipt rather than
// trusting the payload.
const (
	ChangeChallengeGenerated = "challenge_generated"
	ChangeChallengeActivated = "challenge_activated"
	ChangeChallengeCompleted = "challenge_completed"
	ChangeSubmissionCreated  = "submission_created"
	ChangeVoteCast           = "vote_cast"
)

type ChallengeChanged struct {
	Kind        string `json:"kind"`
	EventID     string `json:"event_id"`
	ChallengeID string `json:"challenge_id"`
}

// EventChallengesSnapshot is pushed to subscribers of an event whenever
// any of its challenges change. It carries the full current result set,
// not a delta.
type EventChallengesSnapshot struct {
	EventID    string      `json:"event_id"`
	Challenges []Challenge `json:"challenges"`
}

// ChallengeSnapshot is pushed to subscribers of a single challenge. It
// carries the live leaderboard alongside the submissions.
type ChallengeSnapshot struct {
	ChallengeID string             `json:"challenge_id"`
	Submissions []Submission       `json:"submissions"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
