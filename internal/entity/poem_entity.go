package entity

import (
	"time"

	"github.com/google/uuid"
)

type PoemStatus string

const (
	PoemDraft       PoemStatus = "draft"
	PoemUnderReview PoemStatus = "under_review"
	PoemRevised     PoemStatus = "revised"
	PoemAccepted    PoemStatus = "accepted"
)

// Poem content is immutable once created; only Status advances.
type Poem struct {
	Id           uuid.UUID
	Prompt       string
	Content      string
	GuideVersion int // guide version the poem was authored against
	Status       PoemStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
