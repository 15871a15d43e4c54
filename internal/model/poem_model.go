package model

import (
	"time"

	"github.com/google/uuid"
)

type Poem struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Prompt       string    `gorm:"type:text;not null"`
	Content      string    `gorm:"type:text;not null"`
	GuideVersion int       `gorm:"not null"`
	Status       string    `gorm:"type:varchar(32);not null;default:'draft'"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Poem) TableName() string {
	return "poems"
}
