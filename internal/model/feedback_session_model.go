package model

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackSession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PoemId          uuid.UUID `gorm:"type:uuid;not null;index"`
	OverallFeedback *string   `gorm:"type:text"`
	Rating          *int
	Status          string    `gorm:"type:varchar(32);not null;default:'in_progress'"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (FeedbackSession) TableName() string {
	return "feedback_sessions"
}
