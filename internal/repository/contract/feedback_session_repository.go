package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeedbackSessionRepository interface {
	Create(ctx context.Context, session *entity.FeedbackSession) error
	Update(ctx context.Context, session *entity.FeedbackSession) error
	// UpdateStatusIf flips the session status only when it still matches
	// `from`, reporting whether the transition was won.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.FeedbackStatus) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeedbackSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackSession, error)
}
