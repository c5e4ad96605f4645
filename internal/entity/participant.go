package entity

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeParticipant records membership of a user in a challenge. Rows
// are append-only until the challenge ends.
type ChallengeParticipant struct {
	ChallengeID string    `gorm:"primaryKey"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Points uint64
}
