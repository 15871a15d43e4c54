package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"
)

type PoemRepository interface {
	Create(ctx context.Context, poem *entity.Poem) error
	Update(ctx context.Context, poem *entity.Poem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Poem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Poem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
