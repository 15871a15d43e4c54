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
	"ai-poemreview-be/pkg/reviser"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	Start(ctx context.Context, poemId uuid.UUID) (*dto.FeedbackSessionResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.FeedbackSessionResponse, error)
	AddComment(ctx context.Context, sessionId uuid.UUID, req *dto.AddCommentRequest) (*dto.InlineCommentResponse, error)
	DeleteComment(ctx context.Context, sessionId, commentId uuid.UUID) error
	Update(ctx context.Context, sessionId uuid.UUID, req *dto.UpdateFeedbackRequest) (*dto.FeedbackSessionResponse, error)
	Submit(ctx context.Context, sessionId uuid.UUID) (*dto.FeedbackSessionResponse, error)
	Process(ctx context.Context, sessionId uuid.UUID) (*dto.RevisionResponse, error)
}

type feedbackService struct {
	uowFactory   unitofwork.RepositoryFactory
	guideService IGuideService
	reviser      reviser.Reviser
	logger       logger.ILogger
}

func NewFeedbackService(
	uowFactory unitofwork.RepositoryFactory,
	guideService IGuideService,
	rev reviser.Reviser,
	log logger.ILogger,
) IFeedbackService {
	return &feedbackService{
		uowFactory:   uowFactory,
		guideService: guideService,
		reviser:      rev,
		logger:       log,
	}
}

func (s *feedbackService) Start(ctx context.Context, poemId uuid.UUID) (*dto.FeedbackSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	poem, err := uow.PoemRepository().FindOne(ctx, specification.ByID{ID: poemId})
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

	poem.Status = entity.PoemUnderReview
	if err := uow.PoemRepository().Update(ctx, poem); err != nil {
		return nil, err
	}

	session := entity.FeedbackSession{
		Id:        uuid.New(),
		PoemId:    poemId,
		Status:    entity.FeedbackInProgress,
		CreatedAt: time.Now(),
	}
	if err := uow.FeedbackSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toFeedbackSessionResponse(&session, nil), nil
}

func (s *feedbackService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.FeedbackSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, comments, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	return toFeedbackSessionResponse(session, comments), nil
}

func (s *feedbackService) AddComment(ctx context.Context, sessionId uuid.UUID, req *dto.AddCommentRequest) (*dto.InlineCommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.FeedbackSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("feedback session")
	}
	if session.Status != entity.FeedbackInProgress {
		return nil, apperr.InvalidState("cannot add comments to a %s session, must be in_progress", session.Status)
	}

	poem, err := uow.PoemRepository().FindOne(ctx, specification.ByID{ID: session.PoemId})
	if err != nil {
		return nil, err
	}
	if poem != nil && req.EndOffset > len(poem.Content) {
		return nil, apperr.Validation("end_offset %d exceeds poem length %d", req.EndOffset, len(poem.Content))
	}

	comment := entity.InlineComment{
		Id:              uuid.New(),
		SessionId:       sessionId,
		HighlightedText: req.HighlightedText,
		StartOffset:     req.StartOffset,
		EndOffset:       req.EndOffset,
		Comment:         req.Comment,
		CreatedAt:       time.Now(),
	}
	if err := uow.InlineCommentRepository().Create(ctx, &comment); err != nil {
		return nil, err
	}

	return toInlineCommentResponse(&comment), nil
}

func (s *feedbackService) DeleteComment(ctx context.Context, sessionId, commentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.FeedbackSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return apperr.NotFound("feedback session")
	}
	if session.Status != entity.FeedbackInProgress {
		return apperr.InvalidState("cannot delete comments from a %s session, must be in_progress", session.Status)
	}

	comment, err := uow.InlineCommentRepository().FindOne(ctx,
		specification.ByID{ID: commentId},
		specification.BySessionID{SessionID: sessionId},
	)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperr.NotFound("comment")
	}

	return uow.InlineCommentRepository().Delete(ctx, commentId)
}

func (s *feedbackService) Update(ctx context.Context, sessionId uuid.UUID, req *dto.UpdateFeedbackRequest) (*dto.FeedbackSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, comments, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.FeedbackInProgress {
		return nil, apperr.InvalidState("cannot update a %s session, must be in_progress", session.Status)
	}

	if req.OverallFeedback != nil {
		session.OverallFeedback = req.OverallFeedback
	}
	if req.Rating != nil {
		session.Rating = req.Rating
	}
	if err := uow.FeedbackSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return toFeedbackSessionResponse(session, comments), nil
}

func (s *feedbackService) Submit(ctx context.Context, sessionId uuid.UUID) (*dto.FeedbackSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, comments, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.FeedbackInProgress {
		return nil, apperr.InvalidState("session already %s, must be in_progress", session.Status)
	}

	session.Status = entity.FeedbackSubmitted
	if err := uow.FeedbackSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return toFeedbackSessionResponse(session, comments), nil
}

// Process turns a submitted session into a Revision. Idempotent: an existing
// revision is returned unchanged no matter how often this is called.
func (s *feedbackService) Process(ctx context.Context, sessionId uuid.UUID) (*dto.RevisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, comments, err := s.loadSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	existing, err := uow.RevisionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toRevisionResponse(existing), nil
	}

	if session.Status != entity.FeedbackSubmitted {
		return nil, apperr.InvalidState("session is %s, must be submitted before processing", session.Status)
	}

	poem, err := uow.PoemRepository().FindOne(ctx, specification.ByID{ID: session.PoemId})
	if err != nil {
		return nil, err
	}
	if poem == nil {
		return nil, apperr.NotFound("poem")
	}

	// The guide the poem was authored against; a deleted version degrades to
	// empty content rather than blocking the revision.
	guideContent, err := s.guideService.ContentAt(ctx, poem.GuideVersion)
	if err != nil {
		return nil, err
	}

	commentInputs := make([]reviser.CommentInput, 0, len(comments))
	for _, c := range comments {
		commentInputs = append(commentInputs, reviser.CommentInput{
			HighlightedText: c.HighlightedText,
			Comment:         c.Comment,
		})
	}

	overall := ""
	if session.OverallFeedback != nil {
		overall = *session.OverallFeedback
	}

	result, err := s.reviser.Revise(ctx, poem.Content, overall, commentInputs, guideContent)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	revision := entity.Revision{
		Id:                   uuid.New(),
		SessionId:            sessionId,
		OriginalPoemId:       poem.Id,
		RevisedPoem:          result.RevisedPoem,
		ProposedGuideChanges: result.ProposedGuideChanges,
		Rationale:            &result.Rationale,
		PoemAccepted:         entity.DecisionPending,
		GuideChangesAccepted: entity.DecisionPending,
		CreatedAt:            time.Now(),
	}
	if err := uow.RevisionRepository().Create(ctx, &revision); err != nil {
		return nil, err
	}

	session.Status = entity.FeedbackProcessed
	if err := uow.FeedbackSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("feedback", "Processed feedback session", map[string]interface{}{
		"session_id":  sessionId.String(),
		"revision_id": revision.Id.String(),
	})
	return toRevisionResponse(&revision), nil
}

func (s *feedbackService) loadSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.FeedbackSession, []*entity.InlineComment, error) {
	session, err := uow.FeedbackSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, apperr.NotFound("feedback session")
	}

	comments, err := uow.InlineCommentRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, nil, err
	}
	return session, comments, nil
}

func toFeedbackSessionResponse(session *entity.FeedbackSession, comments []*entity.InlineComment) *dto.FeedbackSessionResponse {
	commentResponses := make([]dto.InlineCommentResponse, 0, len(comments))
	for _, c := range comments {
		commentResponses = append(commentResponses, *toInlineCommentResponse(c))
	}
	return &dto.FeedbackSessionResponse{
		Id:              session.Id,
		PoemId:          session.PoemId,
		OverallFeedback: session.OverallFeedback,
		Rating:          session.Rating,
		Status:          string(session.Status),
		CreatedAt:       session.CreatedAt,
		Comments:        commentResponses,
	}
}

func toInlineCommentResponse(c *entity.InlineComment) *dto.InlineCommentResponse {
	return &dto.InlineCommentResponse{
		Id:              c.Id,
		HighlightedText: c.HighlightedText,
		StartOffset:     c.StartOffset,
		EndOffset:       c.EndOffset,
		Comment:         c.Comment,
		CreatedAt:       c.CreatedAt,
	}
}

func toRevisionResponse(r *entity.Revision) *dto.RevisionResponse {
	return &dto.RevisionResponse{
		Id:                   r.Id,
		SessionId:            r.SessionId,
		OriginalPoemId:       r.OriginalPoemId,
		RevisedPoem:          r.RevisedPoem,
		ProposedGuideChanges: r.ProposedGuideChanges,
		Rationale:            r.Rationale,
		PoemAccepted:         r.PoemAccepted,
		GuideChangesAccepted: r.GuideChangesAccepted,
		CreatedAt:            r.CreatedAt,
	}
}
