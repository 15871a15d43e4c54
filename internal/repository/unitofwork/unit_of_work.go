package unitofwork

import (
	"context"

	"ai-poemreview-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PoemRepository() contract.PoemRepository
	GuideVersionRepository() contract.GuideVersionRepository

	FeedbackSessionRepository() contract.FeedbackSessionRepository
	InlineCommentRepository() contract.InlineCommentRepository
	VoiceSessionRepository() contract.VoiceSessionRepository
	ConversationMessageRepository() contract.ConversationMessageRepository
	ExtractedFeedbackRepository() contract.ExtractedFeedbackRepository
	RevisionRepository() contract.RevisionRepository
}
