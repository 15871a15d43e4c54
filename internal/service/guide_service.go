package service

import (
	"context"
	"os"
	"time"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/pkg/logger"
	"ai-poemreview-be/internal/repository/specification"
	"ai-poemreview-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const currentGuideCacheKey = "guide:current"

type IGuideService interface {
	Current(ctx context.Context) (*dto.GuideResponse, error)
	Update(ctx context.Context, req *dto.UpdateGuideRequest) (*dto.GuideResponse, error)
	History(ctx context.Context) ([]*dto.GuideVersionResponse, error)
	VersionAt(ctx context.Context, version int) (*dto.GuideResponse, error)

	// ContentAt returns the guide text at a version, or "" when that version
	// does not exist. Used by revision processing, which tolerates a missing
	// guide.
	ContentAt(ctx context.Context, version int) (string, error)
	// InvalidateCache drops the cached current guide after an out-of-band
	// version append.
	InvalidateCache()
}

type guideService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	seedPath   string
	logger     logger.ILogger
}

func NewGuideService(uowFactory unitofwork.RepositoryFactory, seedPath string, log logger.ILogger) IGuideService {
	return &guideService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
		seedPath:   seedPath,
		logger:     log,
	}
}

func (s *guideService) Current(ctx context.Context) (*dto.GuideResponse, error) {
	if cached, found := s.cache.Get(currentGuideCacheKey); found {
		res := cached.(dto.GuideResponse)
		return &res, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.GuideVersionRepository().FindOne(ctx,
		specification.OrderBy{Field: "version", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if latest == nil {
		seeded, err := s.seedInitialGuide(ctx)
		if err != nil {
			return nil, err
		}
		latest = seeded
	}

	res := dto.GuideResponse{Content: latest.Content, Version: latest.Version}
	s.cache.Set(currentGuideCacheKey, res, gocache.DefaultExpiration)
	return &res, nil
}

// seedInitialGuide creates version 1 from the on-disk guide file the first
// time the store is consulted.
func (s *guideService) seedInitialGuide(ctx context.Context) (*entity.GuideVersion, error) {
	content, err := os.ReadFile(s.seedPath)
	if err != nil {
		return nil, apperr.NotFound("guide seed file")
	}

	summary := "Initial guide"
	version := entity.GuideVersion{
		Id:            uuid.New(),
		Content:       string(content),
		Version:       1,
		ChangeSummary: &summary,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GuideVersionRepository().Create(ctx, &version); err != nil {
		return nil, err
	}

	s.logger.Info("guide", "Seeded initial guide version", map[string]interface{}{
		"path": s.seedPath,
	})
	return &version, nil
}

func (s *guideService) Update(ctx context.Context, req *dto.UpdateGuideRequest) (*dto.GuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	maxVersion, err := uow.GuideVersionRepository().MaxVersion(ctx)
	if err != nil {
		return nil, err
	}

	version := entity.GuideVersion{
		Id:            uuid.New(),
		Content:       req.Content,
		Version:       maxVersion + 1,
		ChangeSummary: req.ChangeSummary,
		CreatedAt:     time.Now(),
	}
	if err := uow.GuideVersionRepository().Create(ctx, &version); err != nil {
		return nil, err
	}

	// Keep the on-disk copy in sync; the DB remains the source of truth.
	if err := os.WriteFile(s.seedPath, []byte(req.Content), 0o644); err != nil {
		s.logger.Warn("guide", "Failed to write guide file", map[string]interface{}{
			"path":  s.seedPath,
			"error": err.Error(),
		})
	}

	s.cache.Delete(currentGuideCacheKey)
	return &dto.GuideResponse{Content: version.Content, Version: version.Version}, nil
}

func (s *guideService) History(ctx context.Context) ([]*dto.GuideVersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	versions, err := uow.GuideVersionRepository().FindAll(ctx,
		specification.OrderBy{Field: "version", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GuideVersionResponse, 0, len(versions))
	for _, v := range versions {
		result = append(result, &dto.GuideVersionResponse{
			Id:            v.Id,
			Version:       v.Version,
			ChangeSummary: v.ChangeSummary,
			CreatedAt:     v.CreatedAt,
		})
	}
	return result, nil
}

func (s *guideService) VersionAt(ctx context.Context, version int) (*dto.GuideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	v, err := uow.GuideVersionRepository().FindOne(ctx, specification.ByVersion{Version: version})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("guide version")
	}
	return &dto.GuideResponse{Content: v.Content, Version: v.Version}, nil
}

func (s *guideService) ContentAt(ctx context.Context, version int) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	v, err := uow.GuideVersionRepository().FindOne(ctx, specification.ByVersion{Version: version})
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return v.Content, nil
}

func (s *guideService) InvalidateCache() {
	s.cache.Delete(currentGuideCacheKey)
}
