package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"
)

type RevisionRepository interface {
	Create(ctx context.Context, revision *entity.Revision) error
	Update(ctx context.Context, revision *entity.Revision) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revision, error)
}
