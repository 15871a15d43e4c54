package entity

import (
	"time"

	"github.com/google/uuid"
)

type VoiceSessionStatus string

const (
	VoiceSessionActive    VoiceSessionStatus = "active"
	VoiceSessionCompleted VoiceSessionStatus = "completed"
	VoiceSessionCancelled VoiceSessionStatus = "cancelled"
)

// VoiceFeedbackSession is the 1:1 conversational companion of a
// FeedbackSession when feedback is collected through the interviewer.
type VoiceFeedbackSession struct {
	Id                uuid.UUID
	FeedbackSessionId uuid.UUID
	Status            VoiceSessionStatus
	CreatedAt         time.Time
	CompletedAt       *time.Time
}
