package mapper

import (
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/model"
)

type VoiceSessionMapper struct{}

func NewVoiceSessionMapper() *VoiceSessionMapper {
	return &VoiceSessionMapper{}
}

func (m *VoiceSessionMapper) ToEntity(s *model.VoiceFeedbackSession) *entity.VoiceFeedbackSession {
	if s == nil {
		return nil
	}
	return &entity.VoiceFeedbackSession{
		Id:                s.Id,
		FeedbackSessionId: s.FeedbackSessionId,
		Status:            entity.VoiceSessionStatus(s.Status),
		CreatedAt:         s.CreatedAt,
		CompletedAt:       s.CompletedAt,
	}
}

func (m *VoiceSessionMapper) ToModel(s *entity.VoiceFeedbackSession) *model.VoiceFeedbackSession {
	if s == nil {
		return nil
	}
	return &model.VoiceFeedbackSession{
		Id:                s.Id,
		FeedbackSessionId: s.FeedbackSessionId,
		Status:            string(s.Status),
		CreatedAt:         s.CreatedAt,
		CompletedAt:       s.CompletedAt,
	}
}

type ConversationMessageMapper struct{}

func NewConversationMessageMapper() *ConversationMessageMapper {
	return &ConversationMessageMapper{}
}

func (m *ConversationMessageMapper) ToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &entity.ConversationMessage{
		Id:             msg.Id,
		VoiceSessionId: msg.VoiceSessionId,
		Role:           entity.MessageRole(msg.Role),
		Content:        msg.Content,
		AudioRef:       msg.AudioRef,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMessageMapper) ToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &model.ConversationMessage{
		Id:             msg.Id,
		VoiceSessionId: msg.VoiceSessionId,
		Role:           string(msg.Role),
		Content:        msg.Content,
		AudioRef:       msg.AudioRef,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMessageMapper) ToEntities(msgs []*model.ConversationMessage) []*entity.ConversationMessage {
	entities := make([]*entity.ConversationMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

type ExtractedFeedbackMapper struct{}

func NewExtractedFeedbackMapper() *ExtractedFeedbackMapper {
	return &ExtractedFeedbackMapper{}
}

func (m *ExtractedFeedbackMapper) ToEntity(e *model.ExtractedFeedback) *entity.ExtractedFeedback {
	if e == nil {
		return nil
	}
	return &entity.ExtractedFeedback{
		Id:                 e.Id,
		VoiceSessionId:     e.VoiceSessionId,
		MessageId:          e.MessageId,
		FeedbackType:       entity.FeedbackType(e.FeedbackType),
		Content:            e.Content,
		HighlightedText:    e.HighlightedText,
		StartOffset:        e.StartOffset,
		EndOffset:          e.EndOffset,
		Confidence:         e.Confidence,
		ConfirmationStatus: entity.ConfirmationStatus(e.ConfirmationStatus),
		CreatedAt:          e.CreatedAt,
	}
}

func (m *ExtractedFeedbackMapper) ToModel(e *entity.ExtractedFeedback) *model.ExtractedFeedback {
	if e == nil {
		return nil
	}
	return &model.ExtractedFeedback{
		Id:                 e.Id,
		VoiceSessionId:     e.VoiceSessionId,
		MessageId:          e.MessageId,
		FeedbackType:       string(e.FeedbackType),
		Content:            e.Content,
		HighlightedText:    e.HighlightedText,
		StartOffset:        e.StartOffset,
		EndOffset:          e.EndOffset,
		Confidence:         e.Confidence,
		ConfirmationStatus: string(e.ConfirmationStatus),
		CreatedAt:          e.CreatedAt,
	}
}

func (m *ExtractedFeedbackMapper) ToEntities(items []*model.ExtractedFeedback) []*entity.ExtractedFeedback {
	entities := make([]*entity.ExtractedFeedback, len(items))
	for i, e := range items {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
