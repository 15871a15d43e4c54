package model

import (
	"time"

	"github.com/google/uuid"
)

type GuideVersion struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content       string    `gorm:"type:text;not null"`
	Version       int       `gorm:"not null;uniqueIndex"`
	ChangeSummary *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (GuideVersion) TableName() string {
	return "guide_versions"
}
