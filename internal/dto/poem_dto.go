package dto

import (
	"time"

	"github.com/google/uuid"
)

type GeneratePoemRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type PoemResponse struct {
	Id           uuid.UUID `json:"id"`
	Prompt       string    `json:"prompt"`
	Content      string    `json:"content"`
	GuideVersion int       `json:"guide_version"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PoemWithFeedbackResponse is the detail view: the poem plus every feedback
// session opened against it.
type PoemWithFeedbackResponse struct {
	PoemResponse
	FeedbackSessions []FeedbackSessionResponse `json:"feedback_sessions"`
}
