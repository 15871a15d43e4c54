package mapper

import (
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/model"
)

type GuideVersionMapper struct{}

func NewGuideVersionMapper() *GuideVersionMapper {
	return &GuideVersionMapper{}
}

func (m *GuideVersionMapper) ToEntity(g *model.GuideVersion) *entity.GuideVersion {
	if g == nil {
		return nil
	}
	return &entity.GuideVersion{
		Id:            g.Id,
		Content:       g.Content,
		Version:       g.Version,
		ChangeSummary: g.ChangeSummary,
		CreatedAt:     g.CreatedAt,
	}
}

func (m *GuideVersionMapper) ToModel(g *entity.GuideVersion) *model.GuideVersion {
	if g == nil {
		return nil
	}
	return &model.GuideVersion{
		Id:            g.Id,
		Content:       g.Content,
		Version:       g.Version,
		ChangeSummary: g.ChangeSummary,
		CreatedAt:     g.CreatedAt,
	}
}

func (m *GuideVersionMapper) ToEntities(versions []*model.GuideVersion) []*entity.GuideVersion {
	entities := make([]*entity.GuideVersion, len(versions))
	for i, g := range versions {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
