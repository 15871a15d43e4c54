package model

import (
	"time"

	"github.com/google/uuid"
)

type Revision struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OriginalPoemId       uuid.UUID `gorm:"type:uuid;not null;index"`
	RevisedPoem          string    `gorm:"type:text;not null"`
	ProposedGuideChanges *string   `gorm:"type:text"`
	Rationale            *string   `gorm:"type:text"`
	PoemAccepted         int       `gorm:"not null;default:0"`
	GuideChangesAccepted int       `gorm:"not null;default:0"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (Revision) TableName() string {
	return "revisions"
}
