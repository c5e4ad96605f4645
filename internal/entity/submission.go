package entity

import (
	"database/sql"
	"time"
)

type Submission struct {
	Base

	ChallengeID string
	Challenge   Challenge `gorm:"foreignKey:ChallengeID"`

	// Submitter identity is snapshotted at submission time, not joined
	// against the live profile.
	UserID     string
	UserName   string
	UserAvatar string

	Content     string `gorm:"type:longtext"`
	MediaURL    string
	SubmittedAt time.Time
	Votes       uint64

	// Rank and Score stay NULL until the owning challenge completes.
	Rank  sql.NullInt64
	Score sql.NullInt64
}
