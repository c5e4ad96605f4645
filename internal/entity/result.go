package entity

import "time"

// ChallengeResult is written once per winner when a challenge completes.
type ChallengeResult struct {
	Base

	ChallengeID string
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	UserID   string
	User     User `gorm:"foreignKey:UserID"`
	UserName string

	Rank             int
	Score            int64
	TotalParticipant int
	Rewards          Array[Reward]
	CompletedAt      time.Time
}
