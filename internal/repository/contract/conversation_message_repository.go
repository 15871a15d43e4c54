package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"
)

type ConversationMessageRepository interface {
	Create(ctx context.Context, message *entity.ConversationMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error)
}
