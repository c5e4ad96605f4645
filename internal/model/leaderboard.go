package model

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	SubmissionID string `json:"submission_id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	UserAvatar   string `json:"user_avatar,omitempty"`
	Votes        uint64 `json:"votes"`
	Score        int64  `json:"score"`
	Change       string `json:"change"`
}

type GetLeaderboardRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type EventLeaderboardEntry struct {
	Rank     uint64 `json:"rank"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	Points   uint64 `json:"points"`
}

type GetEventLeaderboardRequest struct {
	EventID string `json:"event_id"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetEventLeaderboardResponse struct {
	Entries []EventLeaderboardEntry `json:"entries"`
}

type GetEventRankRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

type GetEventRankResponse struct {
	Rank   uint64 `json:"rank"`
	Points uint64 `json:"points"`
}
