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

type FeedbackSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeedbackSessionMapper
}

func NewFeedbackSessionRepository(db *gorm.DB) contract.FeedbackSessionRepository {
	return &FeedbackSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeedbackSessionMapper(),
	}
}

func (r *FeedbackSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeedbackSessionRepositoryImpl) Create(ctx context.Context, session *entity.FeedbackSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeedbackSessionRepositoryImpl) Update(ctx context.Context, session *entity.FeedbackSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

// UpdateStatusIf is a conditional write: the row lock taken by the UPDATE
// serializes concurrent transitions on the same session.
func (r *FeedbackSessionRepositoryImpl) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.FeedbackStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.FeedbackSession{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *FeedbackSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeedbackSession, error) {
	var m model.FeedbackSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeedbackSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackSession, error) {
	var models []*model.FeedbackSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
