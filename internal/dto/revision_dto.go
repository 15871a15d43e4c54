package dto

import (
	"time"

	"github.com/google/uuid"
)

type RevisionResponse struct {
	Id                   uuid.UUID `json:"id"`
	SessionId            uuid.UUID `json:"session_id"`
	OriginalPoemId       uuid.UUID `json:"original_poem_id"`
	RevisedPoem          string    `json:"revised_poem"`
	ProposedGuideChanges *string   `json:"proposed_guide_changes"`
	Rationale            *string   `json:"rationale"`
	PoemAccepted         int       `json:"poem_accepted"`
	GuideChangesAccepted int       `json:"guide_changes_accepted"`
	CreatedAt            time.Time `json:"created_at"`
}

// ReviewRevisionRequest carries the reviewer's independent decisions on the
// poem and the proposed guide changes, with optional hand edits. A nil
// AcceptGuideChanges leaves the guide decision pending.
type ReviewRevisionRequest struct {
	AcceptPoem         bool    `json:"accept_poem"`
	AcceptGuideChanges *bool   `json:"accept_guide_changes"`
	EditedPoem         *string `json:"edited_poem"`
	EditedGuideChanges *string `json:"edited_guide_changes"`
}
