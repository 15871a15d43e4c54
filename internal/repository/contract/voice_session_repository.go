package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"
)

type VoiceSessionRepository interface {
	Create(ctx context.Context, session *entity.VoiceFeedbackSession) error
	Update(ctx context.Context, session *entity.VoiceFeedbackSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceFeedbackSession, error)
}
