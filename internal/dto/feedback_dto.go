package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddCommentRequest struct {
	HighlightedText string `json:"highlighted_text" validate:"required"`
	StartOffset     int    `json:"start_offset" validate:"gte=0"`
	EndOffset       int    `json:"end_offset" validate:"gtfield=StartOffset"`
	Comment         string `json:"comment" validate:"required"`
}

type InlineCommentResponse struct {
	Id              uuid.UUID `json:"id"`
	HighlightedText string    `json:"highlighted_text"`
	StartOffset     int       `json:"start_offset"`
	EndOffset       int       `json:"end_offset"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

type FeedbackSessionResponse struct {
	Id              uuid.UUID               `json:"id"`
	PoemId          uuid.UUID               `json:"poem_id"`
	OverallFeedback *string                 `json:"overall_feedback"`
	Rating          *int                    `json:"rating"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	Comments        []InlineCommentResponse `json:"comments"`
}

// UpdateFeedbackRequest is a partial update; nil fields keep their current
// value.
type UpdateFeedbackRequest struct {
	OverallFeedback *string `json:"overall_feedback"`
	Rating          *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}
