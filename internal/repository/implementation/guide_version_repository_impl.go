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

type GuideVersionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GuideVersionMapper
}

func NewGuideVersionRepository(db *gorm.DB) contract.GuideVersionRepository {
	return &GuideVersionRepositoryImpl{
		db:     db,
		mapper: mapper.NewGuideVersionMapper(),
	}
}

func (r *GuideVersionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GuideVersionRepositoryImpl) Create(ctx context.Context, version *entity.GuideVersion) error {
	m := r.mapper.ToModel(version)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*version = *r.mapper.ToEntity(m)
	return nil
}

func (r *GuideVersionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuideVersion, error) {
	var m model.GuideVersion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GuideVersionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuideVersion, error) {
	var models []*model.GuideVersion
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GuideVersionRepositoryImpl) MaxVersion(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.GuideVersion{}).Select("MAX(version)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
