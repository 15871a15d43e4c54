package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	AudioUrl  *string   `json:"audio_url"`
	CreatedAt time.Time `json:"created_at"`
}

type ExtractedFeedbackResponse struct {
	Id                 uuid.UUID `json:"id"`
	FeedbackType       string    `json:"feedback_type"`
	Content            string    `json:"content"`
	HighlightedText    *string   `json:"highlighted_text"`
	StartOffset        *int      `json:"start_offset"`
	EndOffset          *int      `json:"end_offset"`
	Confidence         float64   `json:"confidence"`
	ConfirmationStatus string    `json:"confirmation_status"`
	CreatedAt          time.Time `json:"created_at"`
}

type VoiceSessionResponse struct {
	Id                uuid.UUID                     `json:"id"`
	FeedbackSessionId uuid.UUID                     `json:"feedback_session_id"`
	Status            string                        `json:"status"`
	CreatedAt         time.Time                     `json:"created_at"`
	CompletedAt       *time.Time                    `json:"completed_at"`
	Messages          []ConversationMessageResponse `json:"messages"`
	ExtractedFeedback []ExtractedFeedbackResponse   `json:"extracted_feedback"`
}

// ConfirmFeedbackRequest partitions the extracted items into kept and
// discarded sets. Items in neither list stay pending.
type ConfirmFeedbackRequest struct {
	ConfirmedIds []uuid.UUID `json:"confirmed_ids"`
	RejectedIds  []uuid.UUID `json:"rejected_ids"`
}

type ConfirmFeedbackResponse struct {
	Status                string    `json:"status"`
	FeedbackSessionId     uuid.UUID `json:"feedback_session_id"`
	InlineCommentsCreated int       `json:"inline_comments_created"`
}

type CancelVoiceSessionResponse struct {
	Status string `json:"status"`
}

// VoiceMessageInput is the decoded multipart body of a message turn. Exactly
// one of Text or AudioContent must be set; audio is transcribed before use.
type VoiceMessageInput struct {
	Text          string
	AudioContent  []byte
	AudioFilename string
}
