package entity

import (
	"time"

	"github.com/google/uuid"
)

// Decision values for Revision.PoemAccepted / GuideChangesAccepted.
const (
	DecisionPending  = 0
	DecisionAccepted = 1
	DecisionRejected = -1
)

// Revision is produced once per FeedbackSession (1:1). Processing a session
// that already has a revision returns the existing one.
type Revision struct {
	Id                   uuid.UUID
	SessionId            uuid.UUID
	OriginalPoemId       uuid.UUID
	RevisedPoem          string
	ProposedGuideChanges *string
	Rationale            *string
	PoemAccepted         int
	GuideChangesAccepted int
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}
