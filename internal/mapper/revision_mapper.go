package mapper

import (
	"time"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/model"
)

type RevisionMapper struct{}

func NewRevisionMapper() *RevisionMapper {
	return &RevisionMapper{}
}

func (m *RevisionMapper) ToEntity(r *model.Revision) *entity.Revision {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Revision{
		Id:                   r.Id,
		SessionId:            r.SessionId,
		OriginalPoemId:       r.OriginalPoemId,
		RevisedPoem:          r.RevisedPoem,
		ProposedGuideChanges: r.ProposedGuideChanges,
		Rationale:            r.Rationale,
		PoemAccepted:         r.PoemAccepted,
		GuideChangesAccepted: r.GuideChangesAccepted,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}

func (m *RevisionMapper) ToModel(r *entity.Revision) *model.Revision {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Revision{
		Id:                   r.Id,
		SessionId:            r.SessionId,
		OriginalPoemId:       r.OriginalPoemId,
		RevisedPoem:          r.RevisedPoem,
		ProposedGuideChanges: r.ProposedGuideChanges,
		Rationale:            r.Rationale,
		PoemAccepted:         r.PoemAccepted,
		GuideChangesAccepted: r.GuideChangesAccepted,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}
