package service

import (
	"context"
	"time"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/pkg/logger"
	"ai-poemreview-be/internal/repository/specification"
	"ai-poemreview-be/internal/repository/unitofwork"
	"ai-poemreview-be/pkg/poet"

	"github.com/google/uuid"
)

type IPoemService interface {
	Generate(ctx context.Context, req *dto.GeneratePoemRequest) (*dto.PoemResponse, error)
	GetAll(ctx context.Context) ([]*dto.PoemResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.PoemWithFeedbackResponse, error)
}

type poemService struct {
	uowFactory   unitofwork.RepositoryFactory
	guideService IGuideService
	poet         poet.Poet
	logger       logger.ILogger
}

func NewPoemService(
	uowFactory unitofwork.RepositoryFactory,
	guideService IGuideService,
	p poet.Poet,
	log logger.ILogger,
) IPoemService {
	return &poemService{
		uowFactory:   uowFactory,
		guideService: guideService,
		poet:         p,
		logger:       log,
	}
}

func (s *poemService) Generate(ctx context.Context, req *dto.GeneratePoemRequest) (*dto.PoemResponse, error) {
	guide, err := s.guideService.Current(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.poet.GeneratePoem(ctx, req.Prompt, guide.Content)
	if err != nil {
		return nil, err
	}

	poem := entity.Poem{
		Id:           uuid.New(),
		Prompt:       req.Prompt,
		Content:      content,
		GuideVersion: guide.Version,
		Status:       entity.PoemDraft,
		CreatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PoemRepository().Create(ctx, &poem); err != nil {
		return nil, err
	}

	s.logger.Info("poem", "Generated poem", map[string]interface{}{
		"poem_id":       poem.Id.String(),
		"guide_version": guide.Version,
	})
	return toPoemResponse(&poem), nil
}

func (s *poemService) GetAll(ctx context.Context) ([]*dto.PoemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	poems, err := uow.PoemRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PoemResponse, 0, len(poems))
	for _, p := range poems {
		result = append(result, toPoemResponse(p))
	}
	return result, nil
}

func (s *poemService) Show(ctx context.Context, id uuid.UUID) (*dto.PoemWithFeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	poem, err := uow.PoemRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if poem == nil {
		return nil, apperr.NotFound("poem")
	}

	sessions, err := uow.FeedbackSessionRepository().FindAll(ctx, specification.ByPoemID{PoemID: id})
	if err != nil {
		return nil, err
	}

	sessionResponses := make([]dto.FeedbackSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		comments, err := uow.InlineCommentRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.Id},
		)
		if err != nil {
			return nil, err
		}
		sessionResponses = append(sessionResponses, *toFeedbackSessionResponse(session, comments))
	}

	return &dto.PoemWithFeedbackResponse{
		PoemResponse:     *toPoemResponse(poem),
		FeedbackSessions: sessionResponses,
	}, nil
}

func toPoemResponse(p *entity.Poem) *dto.PoemResponse {
	return &dto.PoemResponse{
		Id:           p.Id,
		Prompt:       p.Prompt,
		Content:      p.Content,
		GuideVersion: p.GuideVersion,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}
