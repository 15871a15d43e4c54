package entity

import (
	"time"

	"github.com/google/uuid"
)

// InlineComment ties a critique to a [StartOffset, EndOffset) span of the
// poem text.
type InlineComment struct {
	Id              uuid.UUID
	SessionId       uuid.UUID
	HighlightedText string
	StartOffset     int
	EndOffset       int
	Comment         string
	CreatedAt       time.Time
}
