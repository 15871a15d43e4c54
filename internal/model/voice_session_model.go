package model

import (
	"time"

	"github.com/google/uuid"
)

type VoiceFeedbackSession struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FeedbackSessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Status            string    `gorm:"type:varchar(32);not null;default:'active'"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	CompletedAt       *time.Time
}

func (VoiceFeedbackSession) TableName() string {
	return "voice_feedback_sessions"
}
