package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackSubmitted  FeedbackStatus = "submitted"
	FeedbackProcessed  FeedbackStatus = "processed"
)

// FeedbackSession is one review round for a poem. Its comments and overall
// feedback are mutable only while in_progress.
type FeedbackSession struct {
	Id              uuid.UUID
	PoemId          uuid.UUID
	OverallFeedback *string
	Rating          *int
	Status          FeedbackStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
