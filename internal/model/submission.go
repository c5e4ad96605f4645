package model

type Submission struct {
	ID          string `json:"id,omitempty"`
	ChallengeID string `json:"challenge_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	UserName    string `json:"user_name,omitempty"`
	UserAvatar  string `json:"user_avatar,omitempty"`
	Content     string `json:"content,omitempty"`
	MediaURL    string `json:"media_url,omitempty"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	Votes       uint64 `json:"votes"`
	Rank        int64  `json:"rank,omitempty"`
	Score       int64  `json:"score,omitempty"`
}

type SubmitRequest struct {
	ChallengeID string `json:"challenge_id"`
	Content     string `json:"content"`
	MediaURL    string `json:"media_url"`
}

type SubmitResponse struct {
	ID string `json:"id"`
}

type ParticipateRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type ParticipateResponse struct{}

type GetSubmissionRequest struct {
	ID string `json:"id"`
}

type GetSubmissionResponse Submission

type GetListSubmissionRequest struct {
	ChallengeID string `json:"challenge_id"`
	Offset      int    `json:"offset"`
	Limit       int    `json:"limit"`
}

type GetListSubmissionResponse struct {
	Submissions []Submission `json:"submissions"`
}

type VoteRequest struct {
	SubmissionID string `json:"submission_id"`
}

type VoteResponse struct{}
