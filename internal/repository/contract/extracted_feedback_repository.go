package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"
)

type ExtractedFeedbackRepository interface {
	Create(ctx context.Context, item *entity.ExtractedFeedback) error
	Update(ctx context.Context, item *entity.ExtractedFeedback) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExtractedFeedback, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExtractedFeedback, error)
}
