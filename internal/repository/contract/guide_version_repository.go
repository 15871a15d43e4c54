package contract

import (
	"context"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"
)

type GuideVersionRepository interface {
	Create(ctx context.Context, version *entity.GuideVersion) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuideVersion, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuideVersion, error)
	// MaxVersion returns the highest version number, 0 when the store is empty.
	MaxVersion(ctx context.Context) (int, error)
}
