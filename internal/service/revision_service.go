package service

import (
	"context"
	"fmt"
	"time"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/pkg/logger"
	"ai-poemreview-be/internal/repository/specification"
	"ai-poemreview-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRevisionService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.RevisionResponse, error)
	Review(ctx context.Context, id uuid.UUID, req *dto.ReviewRevisionRequest) (*dto.RevisionResponse, error)
}

type revisionService struct {
	uowFactory   unitofwork.RepositoryFactory
	guideService IGuideService
	logger       logger.ILogger
}

func NewRevisionService(
	uowFactory unitofwork.RepositoryFactory,
	guideService IGuideService,
	log logger.ILogger,
) IRevisionService {
	return &revisionService{
		uowFactory:   uowFactory,
		guideService: guideService,
		logger:       log,
	}
}

func (s *revisionService) Show(ctx context.Context, id uuid.UUID) (*dto.RevisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	revision, err := uow.RevisionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if revision == nil {
		return nil, apperr.NotFound("revision")
	}
	return toRevisionResponse(revision), nil
}

// Review records the reviewer's decisions. The poem and guide decisions are
// independent: rejecting one never blocks accepting the other.
func (s *revisionService) Review(ctx context.Context, id uuid.UUID, req *dto.ReviewRevisionRequest) (*dto.RevisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	revision, err := uow.RevisionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if revision == nil {
		return nil, apperr.NotFound("revision")
	}

	poem, err := uow.PoemRepository().FindOne(ctx, specification.ByID{ID: revision.OriginalPoemId})
	if err != nil {
		return nil, err
	}
	if poem == nil {
		return nil, apperr.NotFound("poem")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.AcceptPoem {
		revision.PoemAccepted = entity.DecisionAccepted
		if req.EditedPoem != nil && *req.EditedPoem != "" {
			revision.RevisedPoem = *req.EditedPoem
		}
		poem.Status = entity.PoemAccepted
		if err := uow.PoemRepository().Update(ctx, poem); err != nil {
			return nil, err
		}
	} else {
		revision.PoemAccepted = entity.DecisionRejected
	}

	guideApplied := false
	if req.AcceptGuideChanges != nil {
		if *req.AcceptGuideChanges && revision.ProposedGuideChanges != nil {
			revision.GuideChangesAccepted = entity.DecisionAccepted

			changes := *revision.ProposedGuideChanges
			if req.EditedGuideChanges != nil && *req.EditedGuideChanges != "" {
				changes = *req.EditedGuideChanges
			}

			current, err := uow.GuideVersionRepository().FindOne(ctx,
				specification.OrderBy{Field: "version", Desc: true},
			)
			if err != nil {
				return nil, err
			}
			currentContent := ""
			maxVersion := 0
			if current != nil {
				currentContent = current.Content
				maxVersion = current.Version
			}

			summary := fmt.Sprintf("Applied changes from revision %s", revision.Id)
			newVersion := entity.GuideVersion{
				Id:            uuid.New(),
				Content:       currentContent + "\n\n" + changes,
				Version:       maxVersion + 1,
				ChangeSummary: &summary,
				CreatedAt:     time.Now(),
			}
			if err := uow.GuideVersionRepository().Create(ctx, &newVersion); err != nil {
				return nil, err
			}
			guideApplied = true
		} else if !*req.AcceptGuideChanges {
			revision.GuideChangesAccepted = entity.DecisionRejected
		}
	}

	if err := uow.RevisionRepository().Update(ctx, revision); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if guideApplied {
		s.guideService.InvalidateCache()
	}

	s.logger.Info("revision", "Reviewed revision", map[string]interface{}{
		"revision_id":   id.String(),
		"poem_accepted": revision.PoemAccepted,
		"guide_applied": guideApplied,
	})
	return toRevisionResponse(revision), nil
}
