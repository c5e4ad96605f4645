package entity

import "time"

type Event struct {
	Base

	CreatedBy string
	Creator   User `gorm:"foreignKey:CreatedBy"`

	Name        string
	Description string
	Sport       string
	StartTime   time.Time
	EndTime     time.Time
}
