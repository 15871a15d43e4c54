package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/pkg/logger"
	"ai-poemreview-be/internal/repository/specification"
	"ai-poemreview-be/internal/repository/unitofwork"
	"ai-poemreview-be/pkg/audiostore"
	"ai-poemreview-be/pkg/interviewer"
	"ai-poemreview-be/pkg/textspan"
	"ai-poemreview-be/pkg/transcribe"

	"github.com/google/uuid"
)

type IVoiceService interface {
	Start(ctx context.Context, poemId uuid.UUID) (*dto.VoiceSessionResponse, error)
	SendMessage(ctx context.Context, sessionId uuid.UUID, input *dto.VoiceMessageInput) (*dto.VoiceSessionResponse, error)
	Complete(ctx context.Context, sessionId uuid.UUID) (*dto.VoiceSessionResponse, error)
	Confirm(ctx context.Context, sessionId uuid.UUID, req *dto.ConfirmFeedbackRequest) (*dto.ConfirmFeedbackResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.VoiceSessionResponse, error)
	Cancel(ctx context.Context, sessionId uuid.UUID) (*dto.CancelVoiceSessionResponse, error)
}

type voiceService struct {
	uowFactory   unitofwork.RepositoryFactory
	guideService IGuideService
	interviewer  interviewer.Interviewer
	transcriber  transcribe.Transcriber
	audioStore   *audiostore.Store
	logger       logger.ILogger
}

func NewVoiceService(
	uowFactory unitofwork.RepositoryFactory,
	guideService IGuideService,
	iv interviewer.Interviewer,
	tr transcribe.Transcriber,
	store *audiostore.Store,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		uowFactory:   uowFactory,
		guideService: guideService,
		interviewer:  iv,
		transcriber:  tr,
		audioStore:   store,
		logger:       log,
	}
}

// Start opens a feedback session and its conversational companion as one
// atomic pair, and records the interviewer's greeting as the first message.
func (s *voiceService) Start(ctx context.Context, poemId uuid.UUID) (*dto.VoiceSessionResponse, error) {
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

	feedbackSession := entity.FeedbackSession{
		Id:        uuid.New(),
		PoemId:    poemId,
		Status:    entity.FeedbackInProgress,
		CreatedAt: time.Now(),
	}
	if err := uow.FeedbackSessionRepository().Create(ctx, &feedbackSession); err != nil {
		return nil, err
	}

	voiceSession := entity.VoiceFeedbackSession{
		Id:                uuid.New(),
		FeedbackSessionId: feedbackSession.Id,
		Status:            entity.VoiceSessionActive,
		CreatedAt:         time.Now(),
	}
	if err := uow.VoiceSessionRepository().Create(ctx, &voiceSession); err != nil {
		return nil, err
	}

	greeting := entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: voiceSession.Id,
		Role:           entity.RoleAi,
		Content:        interviewer.InitialGreeting(poem.Content),
		CreatedAt:      time.Now(),
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("voice", "Started voice feedback session", map[string]interface{}{
		"voice_session_id":    voiceSession.Id.String(),
		"feedback_session_id": feedbackSession.Id.String(),
	})

	return toVoiceSessionResponse(&voiceSession, []*entity.ConversationMessage{&greeting}, nil), nil
}

// SendMessage processes one reviewer turn. Audio is stored and transcribed
// first; the transcript is what flows through the interviewer.
func (s *voiceService) SendMessage(ctx context.Context, sessionId uuid.UUID, input *dto.VoiceMessageInput) (*dto.VoiceSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	voiceSession, err := uow.VoiceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if voiceSession == nil {
		return nil, apperr.NotFound("voice session")
	}
	if voiceSession.Status != entity.VoiceSessionActive {
		return nil, apperr.InvalidState("session is %s, must be active", voiceSession.Status)
	}

	text := input.Text
	var audioRef *string
	if len(input.AudioContent) > 0 {
		filename, err := s.audioStore.Save(sessionId, input.AudioFilename, input.AudioContent)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}

		text, err = s.transcriber.Transcribe(ctx, s.audioStore.Path(filename))
		if err != nil {
			if rmErr := s.audioStore.Remove(filename); rmErr != nil {
				s.logger.Warn("voice", "Failed to remove audio after transcription error", map[string]interface{}{
					"filename": filename,
					"error":    rmErr.Error(),
				})
			}
			return nil, err
		}
		audioRef = &filename
	}

	if text == "" {
		return nil, apperr.Validation("either text or audio_file must be provided")
	}

	poem, guideContent, err := s.poemAndGuide(ctx, uow, voiceSession)
	if err != nil {
		return nil, err
	}

	history, err := s.history(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	turn, err := s.interviewer.Respond(ctx, poem.Content, guideContent, history, text)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The reply must sort strictly after the turn it answers; Postgres keeps
	// timestamps at microsecond precision.
	sentAt := time.Now()
	smeMessage := entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: sessionId,
		Role:           entity.RoleSme,
		Content:        text,
		AudioRef:       audioRef,
		CreatedAt:      sentAt,
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &smeMessage); err != nil {
		return nil, err
	}

	aiMessage := entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: sessionId,
		Role:           entity.RoleAi,
		Content:        turn.FollowUpQuestion,
		CreatedAt:      sentAt.Add(time.Microsecond),
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &aiMessage); err != nil {
		return nil, err
	}

	if err := s.persistItems(ctx, uow, sessionId, aiMessage.Id, poem.Content, turn.ExtractedItems); err != nil {
		return nil, err
	}

	if turn.IsComplete {
		now := time.Now()
		voiceSession.Status = entity.VoiceSessionCompleted
		voiceSession.CompletedAt = &now
		if err := uow.VoiceSessionRepository().Update(ctx, voiceSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return s.fullSession(ctx, uow, voiceSession)
}

// Complete forces the session to completed. If no items were extracted
// turn-by-turn (a transcript imported after the fact), a batch extraction
// over the whole conversation runs first.
func (s *voiceService) Complete(ctx context.Context, sessionId uuid.UUID) (*dto.VoiceSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	voiceSession, err := uow.VoiceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if voiceSession == nil {
		return nil, apperr.NotFound("voice session")
	}

	existing, err := uow.ExtractedFeedbackRepository().FindAll(ctx, specification.ByVoiceSessionID{VoiceSessionID: sessionId})
	if err != nil {
		return nil, err
	}

	var batchItems []interviewer.Item
	var poemContent string
	if len(existing) == 0 {
		history, err := s.history(ctx, uow, sessionId)
		if err != nil {
			return nil, err
		}
		if len(history) > 0 {
			poem, guideContent, err := s.poemAndGuide(ctx, uow, voiceSession)
			if err != nil {
				return nil, err
			}
			poemContent = poem.Content
			batchItems, err = s.interviewer.ExtractAll(ctx, poem.Content, guideContent, history)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if len(batchItems) > 0 {
		if err := s.persistItems(ctx, uow, sessionId, uuid.Nil, poemContent, batchItems); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	voiceSession.Status = entity.VoiceSessionCompleted
	voiceSession.CompletedAt = &now
	if err := uow.VoiceSessionRepository().Update(ctx, voiceSession); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return s.fullSession(ctx, uow, voiceSession)
}

var digitsRe = regexp.MustCompile(`\d+`)

// Confirm folds the reviewer's kept items into the parent feedback session
// and submits it. All-or-nothing: a failure rolls back every confirmation.
func (s *voiceService) Confirm(ctx context.Context, sessionId uuid.UUID, req *dto.ConfirmFeedbackRequest) (*dto.ConfirmFeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	voiceSession, err := uow.VoiceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if voiceSession == nil {
		return nil, apperr.NotFound("voice session")
	}

	feedbackSession, err := uow.FeedbackSessionRepository().FindOne(ctx, specification.ByID{ID: voiceSession.FeedbackSessionId})
	if err != nil {
		return nil, err
	}
	if feedbackSession == nil {
		return nil, apperr.NotFound("feedback session")
	}
	if feedbackSession.Status != entity.FeedbackInProgress {
		return nil, apperr.InvalidState("feedback session already %s, must be in_progress", feedbackSession.Status)
	}

	items, err := uow.ExtractedFeedbackRepository().FindAll(ctx, specification.ByVoiceSessionID{VoiceSessionID: sessionId})
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.ExtractedFeedback, len(items))
	for _, item := range items {
		byId[item.Id] = item
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Only the writer that flips in_progress -> submitted gets to fold; the
	// read above ran outside the transaction.
	claimed, err := uow.FeedbackSessionRepository().UpdateStatusIf(ctx,
		feedbackSession.Id, entity.FeedbackInProgress, entity.FeedbackSubmitted)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperr.InvalidState("feedback session is no longer in_progress")
	}

	for _, id := range req.RejectedIds {
		item, ok := byId[id]
		if !ok {
			continue
		}
		item.ConfirmationStatus = entity.ConfirmationRejected
		if err := uow.ExtractedFeedbackRepository().Update(ctx, item); err != nil {
			return nil, err
		}
	}

	var overallParts []string
	var guideParts []string
	var ratingValue *int
	commentsCreated := 0

	for _, id := range req.ConfirmedIds {
		item, ok := byId[id]
		if !ok {
			continue
		}

		item.ConfirmationStatus = entity.ConfirmationConfirmed
		if err := uow.ExtractedFeedbackRepository().Update(ctx, item); err != nil {
			return nil, err
		}

		switch item.FeedbackType {
		case entity.FeedbackTypeInlineComment:
			if item.HighlightedText != nil && item.StartOffset != nil && item.EndOffset != nil {
				comment := entity.InlineComment{
					Id:              uuid.New(),
					SessionId:       feedbackSession.Id,
					HighlightedText: *item.HighlightedText,
					StartOffset:     *item.StartOffset,
					EndOffset:       *item.EndOffset,
					Comment:         item.Content,
					CreatedAt:       time.Now(),
				}
				if err := uow.InlineCommentRepository().Create(ctx, &comment); err != nil {
					return nil, err
				}
				commentsCreated++
			}

		case entity.FeedbackTypeOverall:
			overallParts = append(overallParts, item.Content)

		case entity.FeedbackTypeGuideSuggestion:
			guideParts = append(guideParts, item.Content)

		case entity.FeedbackTypeRating:
			// First run of digits wins within an item; the last confirmed
			// rating item wins overall. Out-of-range values are dropped.
			if m := digitsRe.FindString(item.Content); m != "" {
				if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 5 {
					ratingValue = &n
				}
			}
		}
	}

	if len(overallParts) > 0 {
		joined := strings.Join(overallParts, "\n\n")
		feedbackSession.OverallFeedback = &joined
	}
	if len(guideParts) > 0 {
		var b strings.Builder
		if feedbackSession.OverallFeedback != nil {
			b.WriteString(*feedbackSession.OverallFeedback)
		}
		b.WriteString("\n\nSuggested Guide Rules:\n")
		for i, part := range guideParts {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + part)
		}
		combined := b.String()
		feedbackSession.OverallFeedback = &combined
	}
	if ratingValue != nil {
		feedbackSession.Rating = ratingValue
	}

	feedbackSession.Status = entity.FeedbackSubmitted
	if err := uow.FeedbackSessionRepository().Update(ctx, feedbackSession); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("voice", "Confirmed voice feedback", map[string]interface{}{
		"voice_session_id":        sessionId.String(),
		"inline_comments_created": commentsCreated,
	})

	return &dto.ConfirmFeedbackResponse{
		Status:                "confirmed",
		FeedbackSessionId:     feedbackSession.Id,
		InlineCommentsCreated: commentsCreated,
	}, nil
}

func (s *voiceService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.VoiceSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	voiceSession, err := uow.VoiceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if voiceSession == nil {
		return nil, apperr.NotFound("voice session")
	}

	return s.fullSession(ctx, uow, voiceSession)
}

// Cancel abandons an active conversation. Feedback already confirmed onto
// the parent session is untouched.
func (s *voiceService) Cancel(ctx context.Context, sessionId uuid.UUID) (*dto.CancelVoiceSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	voiceSession, err := uow.VoiceSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if voiceSession == nil {
		return nil, apperr.NotFound("voice session")
	}
	if voiceSession.Status != entity.VoiceSessionActive {
		return nil, apperr.InvalidState("session is %s, only active sessions can be cancelled", voiceSession.Status)
	}

	now := time.Now()
	voiceSession.Status = entity.VoiceSessionCancelled
	voiceSession.CompletedAt = &now
	if err := uow.VoiceSessionRepository().Update(ctx, voiceSession); err != nil {
		return nil, err
	}

	return &dto.CancelVoiceSessionResponse{Status: "cancelled"}, nil
}

// persistItems stores extractor output as pending items, resolving inline
// spans against the poem text. An unresolvable span, or extractor-supplied
// offsets outside the poem, keep the item with null offsets rather than
// dropping it.
func (s *voiceService) persistItems(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, messageId uuid.UUID, poemContent string, items []interviewer.Item) error {
	for _, item := range items {
		extracted := entity.ExtractedFeedback{
			Id:                 uuid.New(),
			VoiceSessionId:     sessionId,
			FeedbackType:       entity.FeedbackType(item.FeedbackType),
			Content:            item.Content,
			HighlightedText:    item.HighlightedText,
			Confidence:         item.Confidence,
			ConfirmationStatus: entity.ConfirmationPending,
			CreatedAt:          time.Now(),
		}
		if messageId != uuid.Nil {
			id := messageId
			extracted.MessageId = &id
		}

		if item.HighlightedText != nil && extracted.FeedbackType == entity.FeedbackTypeInlineComment {
			if span, ok := textspan.Resolve(poemContent, *item.HighlightedText); ok {
				start, end := span.Start, span.End
				extracted.StartOffset = &start
				extracted.EndOffset = &end
			}
		} else if item.StartOffset != nil && item.EndOffset != nil &&
			*item.StartOffset >= 0 && *item.StartOffset < *item.EndOffset &&
			*item.EndOffset <= len(poemContent) {
			extracted.StartOffset = item.StartOffset
			extracted.EndOffset = item.EndOffset
		}

		if err := uow.ExtractedFeedbackRepository().Create(ctx, &extracted); err != nil {
			return err
		}
	}
	return nil
}

func (s *voiceService) poemAndGuide(ctx context.Context, uow unitofwork.UnitOfWork, voiceSession *entity.VoiceFeedbackSession) (*entity.Poem, string, error) {
	feedbackSession, err := uow.FeedbackSessionRepository().FindOne(ctx, specification.ByID{ID: voiceSession.FeedbackSessionId})
	if err != nil {
		return nil, "", err
	}
	if feedbackSession == nil {
		return nil, "", apperr.NotFound("feedback session")
	}

	poem, err := uow.PoemRepository().FindOne(ctx, specification.ByID{ID: feedbackSession.PoemId})
	if err != nil {
		return nil, "", err
	}
	if poem == nil {
		return nil, "", apperr.NotFound("poem")
	}

	guideContent, err := s.guideService.ContentAt(ctx, poem.GuideVersion)
	if err != nil {
		return nil, "", err
	}
	return poem, guideContent, nil
}

// history replays the stored conversation in original order. Chronological
// replay is what the interviewer's turn counting relies on.
func (s *voiceService) history(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]interviewer.Message, error) {
	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByVoiceSessionID{VoiceSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]interviewer.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, interviewer.Message{Role: string(m.Role), Content: m.Content})
	}
	return history, nil
}

func (s *voiceService) fullSession(ctx context.Context, uow unitofwork.UnitOfWork, voiceSession *entity.VoiceFeedbackSession) (*dto.VoiceSessionResponse, error) {
	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByVoiceSessionID{VoiceSessionID: voiceSession.Id},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}
	items, err := uow.ExtractedFeedbackRepository().FindAll(ctx,
		specification.ByVoiceSessionID{VoiceSessionID: voiceSession.Id},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}
	return toVoiceSessionResponse(voiceSession, messages, items), nil
}

func toVoiceSessionResponse(session *entity.VoiceFeedbackSession, messages []*entity.ConversationMessage, items []*entity.ExtractedFeedback) *dto.VoiceSessionResponse {
	messageResponses := make([]dto.ConversationMessageResponse, 0, len(messages))
	for _, m := range messages {
		messageResponses = append(messageResponses, dto.ConversationMessageResponse{
			Id:        m.Id,
			Role:      string(m.Role),
			Content:   m.Content,
			AudioUrl:  audiostore.URL(m.AudioRef),
			CreatedAt: m.CreatedAt,
		})
	}

	itemResponses := make([]dto.ExtractedFeedbackResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, dto.ExtractedFeedbackResponse{
			Id:                 item.Id,
			FeedbackType:       string(item.FeedbackType),
			Content:            item.Content,
			HighlightedText:    item.HighlightedText,
			StartOffset:        item.StartOffset,
			EndOffset:          item.EndOffset,
			Confidence:         item.Confidence,
			ConfirmationStatus: string(item.ConfirmationStatus),
			CreatedAt:          item.CreatedAt,
		})
	}

	return &dto.VoiceSessionResponse{
		Id:                session.Id,
		FeedbackSessionId: session.FeedbackSessionId,
		Status:            string(session.Status),
		CreatedAt:         session.CreatedAt,
		CompletedAt:       session.CompletedAt,
		Messages:          messageResponses,
		ExtractedFeedback: itemResponses,
	}
}
