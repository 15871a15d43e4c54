package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackType string

const (
	FeedbackTypeInlineComment   FeedbackType = "inline_comment"
	FeedbackTypeOverall         FeedbackType = "overall"
	FeedbackTypeGuideSuggestion FeedbackType = "guide_suggestion"
	FeedbackTypeRating          FeedbackType = "rating"
)

type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationRejected  ConfirmationStatus = "rejected"
)

// ExtractedFeedback is a candidate item produced by the extractor. It only
// becomes durable feedback (InlineComment / overall / rating) after SME
// confirmation.
type ExtractedFeedback struct {
	Id                 uuid.UUID
	VoiceSessionId     uuid.UUID
	MessageId          *uuid.UUID
	FeedbackType       FeedbackType
	Content            string
	HighlightedText    *string
	StartOffset        *int
	EndOffset          *int
	Confidence         float64
	ConfirmationStatus ConfirmationStatus
	CreatedAt          time.Time
}
