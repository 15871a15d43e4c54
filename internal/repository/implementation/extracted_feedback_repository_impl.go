package implementation

import (
	"context"
	"errors"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/mapper"
	"ai-poemreview-be/internal/model"
	"ai-poemreview-be/internal/repository/contract"
	"ai-poemreview-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ExtractedFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExtractedFeedbackMapper
}

func NewExtractedFeedbackRepository(db *gorm.DB) contract.ExtractedFeedbackRepository {
	return &ExtractedFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewExtractedFeedbackMapper(),
	}
}

func (r *ExtractedFeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ExtractedFeedbackRepositoryImpl) Create(ctx context.Context, item *entity.ExtractedFeedback) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExtractedFeedbackRepositoryImpl) Update(ctx context.Context, item *entity.ExtractedFeedback) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *ExtractedFeedbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExtractedFeedback, error) {
	var m model.ExtractedFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ExtractedFeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExtractedFeedback, error) {
	var models []*model.ExtractedFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
