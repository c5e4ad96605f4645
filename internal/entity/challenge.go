package entity

import (
	"database/sql"
	"time"

	"github.com/athlonhq/backend/pkg/enum"
)

type ChallengeType string

var (
	ChallengeSkillShowcase     = enum.New(ChallengeType("skill_showcase"))
	ChallengeEndurance         = enum.New(ChallengeType("endurance"))
	ChallengeCreativity        = enum.New(ChallengeType("creativity"))
	ChallengeTeamCollaboration = enum.New(ChallengeType("team_collaboration"))
	ChallengeKnowledgeQuiz     = enum.New(ChallengeType("knowledge_quiz"))
	ChallengePhotoContest      = enum.New(ChallengeType("photo_contest"))
)

type ChallengeStatus string

var (
	ChallengeUpcoming  = enum.New(ChallengeStatus("upcoming"))
	ChallengeActive    = enum.New(ChallengeStatus("active"))
	ChallengeCompleted = enum.New(ChallengeStatus("completed"))
)

// CanTransitionTo reports whether the status change is allowed. Status is
// monotonic: upcoming -> active -> completed, never backwards.
func (s ChallengeStatus) CanTransitionTo(next ChallengeStatus) bool {
	switch s {
	case ChallengeUpcoming:
		return next == ChallengeActive || next == ChallengeCompleted
	case ChallengeActive:
		return next == ChallengeCompleted
	default:
		return false
	}
}

type RewardType string

var (
	PointsReward  = enum.New(RewardType("points"))
	BadgeReward   = enum.New(RewardType("badge"))
	TitleReward   = enum.New(RewardType("title"))
	FeatureReward = enum.New(RewardType("feature"))
)

type Reward struct {
	Type RewardType `json:"type"`
	Data Map        `json:"data"`
}

// BonusRewardOf maps every challenge type to its bonus reward, granted on
// top of the base points reward.
var BonusRewardOf = map[ChallengeType]Reward{
	ChallengeSkillShowcase:     {Type: BadgeReward, Data: Map{"name": "Skill Master"}},
	ChallengeEndurance:         {Type: TitleReward, Data: Map{"name": "Iron Athlete"}},
	ChallengeCreativity:        {Type: BadgeReward, Data: Map{"name": "Creative Spark"}},
	ChallengeTeamCollaboration: {Type: TitleReward, Data: Map{"name": "Team Player"}},
	ChallengeKnowledgeQuiz:     {Type: BadgeReward, Data: Map{"name": "Quiz Champion"}},
	ChallengePhotoContest:      {Type: FeatureReward, Data: Map{"name": "Featured Athlete"}},
}

type Challenge struct {
	Base

	EventID string
	Event   Event `gorm:"foreignKey:EventID"`

	Type            ChallengeType
	Status          ChallengeStatus
	Title           string
	Description     string
	Sport           string
	StartDate       time.Time
	EndDate         time.Time
	MaxParticipants sql.NullInt64
	Rewards         Array[Reward]
}

// IsInActiveWindow reports whether now lies inside [StartDate, EndDate).
// A challenge in its window accepts submissions even before the status
// has flipped to active.
func (c *Challenge) IsInActiveWindow(now time.Time) bool {
	return !now.Before(c.StartDate) && now.Before(c.EndDate)
}
