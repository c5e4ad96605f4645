package entity

import "time"

// SubmissionVote is the ledger row behind the votes counter. The composite
// primary key rejects a second vote from the same user at the store level.
type SubmissionVote struct {
	SubmissionID string     `gorm:"primaryKey"`
	Submission   Submission `gorm:"foreignKey:SubmissionID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
