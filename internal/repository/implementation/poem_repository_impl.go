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

type PoemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PoemMapper
}

func NewPoemRepository(db *gorm.DB) contract.PoemRepository {
	return &PoemRepositoryImpl{
		db:     db,
		mapper: mapper.NewPoemMapper(),
	}
}

func (r *PoemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PoemRepositoryImpl) Create(ctx context.Context, poem *entity.Poem) error {
	m := r.mapper.ToModel(poem)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*poem = *r.mapper.ToEntity(m)
	return nil
}

func (r *PoemRepositoryImpl) Update(ctx context.Context, poem *entity.Poem) error {
	m := r.mapper.ToModel(poem)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*poem = *r.mapper.ToEntity(m)
	return nil
}

func (r *PoemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Poem, error) {
	var m model.Poem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PoemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Poem, error) {
	var models []*model.Poem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PoemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Poem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
