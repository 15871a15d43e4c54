package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByPoemID filters by owning poem
type ByPoemID struct {
	PoemID uuid.UUID
}

func (s ByPoemID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("poem_id = ?", s.PoemID)
}

// BySessionID filters by owning feedback session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByFeedbackSessionID filters voice sessions by their parent feedback session
type ByFeedbackSessionID struct {
	FeedbackSessionID uuid.UUID
}

func (s ByFeedbackSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feedback_session_id = ?", s.FeedbackSessionID)
}

// ByVoiceSessionID filters messages and extracted feedback by voice session
type ByVoiceSessionID struct {
	VoiceSessionID uuid.UUID
}

func (s ByVoiceSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("voice_session_id = ?", s.VoiceSessionID)
}

// ByVersion filters guide versions by version number
type ByVersion struct {
	Version int
}

func (s ByVersion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("version = ?", s.Version)
}
