package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	RoleSme MessageRole = "sme"
	RoleAi  MessageRole = "ai"
)

// ConversationMessage is one turn of the interview transcript. The transcript
// is append-only; messages are never edited or removed.
type ConversationMessage struct {
	Id             uuid.UUID
	VoiceSessionId uuid.UUID
	Role           MessageRole
	Content        string
	AudioRef       *string // opaque stored filename, never interpreted here
	CreatedAt      time.Time
}
