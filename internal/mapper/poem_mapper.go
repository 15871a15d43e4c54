package mapper

import (
	"time"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/model"
)

type PoemMapper struct{}

func NewPoemMapper() *PoemMapper {
	return &PoemMapper{}
}

func (m *PoemMapper) ToEntity(p *model.Poem) *entity.Poem {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Poem{
		Id:           p.Id,
		Prompt:       p.Prompt,
		Content:      p.Content,
		GuideVersion: p.GuideVersion,
		Status:       entity.PoemStatus(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *PoemMapper) ToModel(p *entity.Poem) *model.Poem {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Poem{
		Id:           p.Id,
		Prompt:       p.Prompt,
		Content:      p.Content,
		GuideVersion: p.GuideVersion,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *PoemMapper) ToEntities(poems []*model.Poem) []*entity.Poem {
	entities := make([]*entity.Poem, len(poems))
	for i, p := range poems {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
