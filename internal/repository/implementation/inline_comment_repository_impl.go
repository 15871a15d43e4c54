package implementation

import (
	"context"
	"errors"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/mapper"
	"ai-poemreview-be/internal/model"
	"ai-poemreview-be/internal/repository/contract"
	"ai-poemreview-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InlineCommentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InlineCommentMapper
}

func NewInlineCommentRepository(db *gorm.DB) contract.InlineCommentRepository {
	return &InlineCommentRepositoryImpl{
		db:     db,
		mapper: mapper.NewInlineCommentMapper(),
	}
}

func (r *InlineCommentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InlineCommentRepositoryImpl) Create(ctx context.Context, comment *entity.InlineComment) error {
	m := r.mapper.ToModel(comment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*comment = *r.mapper.ToEntity(m)
	return nil
}

func (r *InlineCommentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InlineComment{}, id).Error
}

func (r *InlineCommentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InlineComment, error) {
	var m model.InlineComment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InlineCommentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InlineComment, error) {
	var models []*model.InlineComment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InlineCommentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InlineComment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
