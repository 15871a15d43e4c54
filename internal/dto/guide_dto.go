package dto

import (
	"time"

	"github.com/google/uuid"
)

type GuideResponse struct {
	Content string `json:"content"`
	Version int    `json:"version"`
}

type UpdateGuideRequest struct {
	Content       string  `json:"content" validate:"required"`
	ChangeSummary *string `json:"change_summary"`
}

type GuideVersionResponse struct {
	Id            uuid.UUID `json:"id"`
	Version       int       `json:"version"`
	ChangeSummary *string   `json:"change_summary"`
	CreatedAt     time.Time `json:"created_at"`
}
