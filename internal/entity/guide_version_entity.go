package entity

import (
	"time"

	"github.com/google/uuid"
)

// GuideVersion is an immutable snapshot of the style guide. Versions are
// append-only with a strictly increasing Version number; the current guide is
// the highest version.
type GuideVersion struct {
	Id            uuid.UUID
	Content       string
	Version       int
	ChangeSummary *string
	CreatedAt     time.Time
}
