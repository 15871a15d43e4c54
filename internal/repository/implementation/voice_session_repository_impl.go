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

type VoiceSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VoiceSessionMapper
}

func NewVoiceSessionRepository(db *gorm.DB) contract.VoiceSessionRepository {
	return &VoiceSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewVoiceSessionMapper(),
	}
}

func (r *VoiceSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VoiceSessionRepositoryImpl) Create(ctx context.Context, session *entity.VoiceFeedbackSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *VoiceSessionRepositoryImpl) Update(ctx context.Context, session *entity.VoiceFeedbackSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *VoiceSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceFeedbackSession, error) {
	var m model.VoiceFeedbackSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
