package model

import (
	"time"

	"github.com/google/uuid"
)

type ExtractedFeedback struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VoiceSessionId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	MessageId          *uuid.UUID `gorm:"type:uuid"`
	FeedbackType       string     `gorm:"type:varchar(32);not null"`
	Content            string     `gorm:"type:text;not null"`
	HighlightedText    *string    `gorm:"type:text"`
	StartOffset        *int
	EndOffset          *int
	Confidence         float64   `gorm:"not null;default:0.8"`
	ConfirmationStatus string    `gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (ExtractedFeedback) TableName() string {
	return "extracted_feedback"
}
