package mapper

import (
	"time"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/model"
)

type FeedbackSessionMapper struct{}

func NewFeedbackSessionMapper() *FeedbackSessionMapper {
	return &FeedbackSessionMapper{}
}

func (m *FeedbackSessionMapper) ToEntity(s *model.FeedbackSession) *entity.FeedbackSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.FeedbackSession{
		Id:              s.Id,
		PoemId:          s.PoemId,
		OverallFeedback: s.OverallFeedback,
		Rating:          s.Rating,
		Status:          entity.FeedbackStatus(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *FeedbackSessionMapper) ToModel(s *entity.FeedbackSession) *model.FeedbackSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.FeedbackSession{
		Id:              s.Id,
		PoemId:          s.PoemId,
		OverallFeedback: s.OverallFeedback,
		Rating:          s.Rating,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *FeedbackSessionMapper) ToEntities(sessions []*model.FeedbackSession) []*entity.FeedbackSession {
	entities := make([]*entity.FeedbackSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type InlineCommentMapper struct{}

func NewInlineCommentMapper() *InlineCommentMapper {
	return &InlineCommentMapper{}
}

func (m *InlineCommentMapper) ToEntity(c *model.InlineComment) *entity.InlineComment {
	if c == nil {
		return nil
	}
	return &entity.InlineComment{
		Id:              c.Id,
		SessionId:       c.SessionId,
		HighlightedText: c.HighlightedText,
		StartOffset:     c.StartOffset,
		EndOffset:       c.EndOffset,
		Comment:         c.Comment,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *InlineCommentMapper) ToModel(c *entity.InlineComment) *model.InlineComment {
	if c == nil {
		return nil
	}
	return &model.InlineComment{
		Id:              c.Id,
		SessionId:       c.SessionId,
		HighlightedText: c.HighlightedText,
		StartOffset:     c.StartOffset,
		EndOffset:       c.EndOffset,
		Comment:         c.Comment,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *InlineCommentMapper) ToEntities(comments []*model.InlineComment) []*entity.InlineComment {
	entities := make([]*entity.InlineComment, len(comments))
	for i, c := range comments {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
