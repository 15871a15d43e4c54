package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InlineCommentRepository interface {
	Create(ctx context.Context, comment *entity.InlineComment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InlineComment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InlineComment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
