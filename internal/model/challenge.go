package model

type Reward struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type Challenge struct {
	ID               string   `json:"id,omitempty"`
	EventID          string   `json:"event_id,omitempty"`
	Type             string   `json:"type,omitempty"`
	Status           string   `json:"status,omitempty"`
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	Sport            string   `json:"sport,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	MaxParticipants  int64    `json:"max_participants,omitempty"`
	Rewards          []Reward `json:"rewards,omitempty"`
	ParticipantCount int64    `json:"participant_count"`
	CreatedAt        string   `json:"created_at,omitempty"`
}

type GenerateChallengesRequest struct {
	EventID string `json:"event_id"`
	Sport   string `json:"sport"`
}

type GenerateChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type GetChallengeRequest struct {
	ID string `json:"id"`
}

type GetChallengeResponse Challenge

type GetListChallengeRequest struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetListChallengeResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type GetFeaturedChallengesRequest struct {
	Limit int `json:"limit"`
}

type GetFeaturedChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type ActivateChallengeRequest struct {
	ID string `json:"id"`
}

type ActivateChallengeResponse struct{}

type EndChallengeRequest struct {
	ID string `json:"id"`
}

type EndChallengeResponse struct {
	Results []ChallengeResult `json:"results"`
}

type ChallengeResult struct {
	ChallengeID      string   `json:"challenge_id"`
	UserID           string   `json:"user_id"`
	UserName         string   `json:"user_name"`
	Rank             int      `json:"rank"`
	Score            int64    `json:"score"`
	TotalParticipant int      `json:"total_participant"`
	Rewards          []Reward `json:"rewards,omitempty"`
	CompletedAt      string   `json:"completed_at"`
}

type GetChallengeResultsRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type GetChallengeResultsResponse struct {
	Results []ChallengeResult `json:"results"`
}

type SearchChallengeRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type SearchChallengeResponse struct {
	Challenges []Challenge `json:"challenges"`
}
