package model

import (
	"time"

	"github.com/google/uuid"
)

type InlineComment struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID `gorm:"type:uuid;not null;index"`
	HighlightedText string    `gorm:"type:text;not null"`
	StartOffset     int       `gorm:"not null"`
	EndOffset       int       `gorm:"not null"`
	Comment         string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (InlineComment) TableName() string {
	return "inline_comments"
}
