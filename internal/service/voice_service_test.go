package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/repository/specification"
	"ai-poemreview-be/internal/repository/unitofwork"
	"ai-poemreview-be/pkg/audiostore"
	"ai-poemreview-be/pkg/interviewer"
	"ai-poemreview-be/pkg/transcribe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const voiceTestPoem = "The dog waits by the door.\nIts breath fogs the glass."

func newVoiceService(t *testing.T, factory unitofwork.RepositoryFactory) IVoiceService {
	t.Helper()
	guideService := newTestGuideService(t, factory)
	return NewVoiceService(
		factory,
		guideService,
		interviewer.NewMockInterviewer(),
		transcribe.NewMockTranscriber(),
		audiostore.NewStore(t.TempDir()),
		nopLogger{},
	)
}

func TestVoiceStart(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	assert.Equal(t, "active", session.Status)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "ai", session.Messages[0].Role)
	assert.Contains(t, session.Messages[0].Content, voiceTestPoem)

	// The companion feedback session opens alongside, and the poem moves to
	// under_review.
	uow := factory.NewUnitOfWork(context.Background())
	feedbackSession, err := uow.FeedbackSessionRepository().FindOne(context.Background(),
		specification.ByID{ID: session.FeedbackSessionId})
	require.NoError(t, err)
	require.NotNil(t, feedbackSession)
	assert.Equal(t, entity.FeedbackInProgress, feedbackSession.Status)

	stored, err := uow.PoemRepository().FindOne(context.Background(), specification.ByID{ID: poem.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.PoemUnderReview, stored.Status)
}

func TestVoiceStartUnknownPoem(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)

	_, err := svc.Start(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestVoiceSendMessageExtractsInline(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	session, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "the first line feels flat",
	})
	require.NoError(t, err)

	// greeting + sme turn + ai follow-up
	require.Len(t, session.Messages, 3)
	assert.Equal(t, "sme", session.Messages[1].Role)
	assert.Equal(t, "the first line feels flat", session.Messages[1].Content)
	assert.Equal(t, "ai", session.Messages[2].Role)

	require.Len(t, session.ExtractedFeedback, 1)
	item := session.ExtractedFeedback[0]
	assert.Equal(t, "inline_comment", item.FeedbackType)
	assert.Equal(t, "pending", item.ConfirmationStatus)
	require.NotNil(t, item.HighlightedText)
	assert.Equal(t, "The dog waits by the door.", *item.HighlightedText)
	require.NotNil(t, item.StartOffset)
	require.NotNil(t, item.EndOffset)
	assert.Equal(t, 0, *item.StartOffset)
	assert.Equal(t, len("The dog waits by the door."), *item.EndOffset)
}

func TestVoiceSendMessageEmptyInput(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestVoiceSendMessageWithAudio(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	session, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		AudioContent:  []byte("fake webm bytes"),
		AudioFilename: "clip.webm",
	})
	require.NoError(t, err)

	require.Len(t, session.Messages, 3)
	smeMessage := session.Messages[1]
	assert.Contains(t, smeMessage.Content, "Mock transcription")
	require.NotNil(t, smeMessage.AudioUrl)
	assert.True(t, strings.HasPrefix(*smeMessage.AudioUrl, "/api/audio/"))
}

func TestVoiceCompletionSignalEndsSession(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{Text: "first thoughts"})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{Text: "second thoughts"})
	require.NoError(t, err)

	session, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "4 out of 5, that's all",
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", session.Status)
	assert.NotNil(t, session.CompletedAt)

	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{Text: "one more thing"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

func TestVoiceConfirmFoldsFeedback(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	// Turn 1 yields an inline item and an overall item, turn 2 a guide
	// suggestion, turn 3 a rating plus the completion signal.
	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "overall the first line feels flat",
	})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "never use passive verbs",
	})
	require.NoError(t, err)
	session, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "4 out of 5, that's all",
	})
	require.NoError(t, err)
	require.Len(t, session.ExtractedFeedback, 4)

	var confirmed []uuid.UUID
	var rejected []uuid.UUID
	for _, item := range session.ExtractedFeedback {
		if item.FeedbackType == "guide_suggestion" {
			continue // left pending on purpose
		}
		confirmed = append(confirmed, item.Id)
	}

	res, err := svc.Confirm(context.Background(), session.Id, &dto.ConfirmFeedbackRequest{
		ConfirmedIds: confirmed,
		RejectedIds:  rejected,
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", res.Status)
	assert.Equal(t, session.FeedbackSessionId, res.FeedbackSessionId)
	assert.Equal(t, 1, res.InlineCommentsCreated)

	uow := factory.NewUnitOfWork(context.Background())
	feedbackSession, err := uow.FeedbackSessionRepository().FindOne(context.Background(),
		specification.ByID{ID: session.FeedbackSessionId})
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackSubmitted, feedbackSession.Status)
	require.NotNil(t, feedbackSession.OverallFeedback)
	assert.Contains(t, *feedbackSession.OverallFeedback, "Overall observation")
	require.NotNil(t, feedbackSession.Rating)
	assert.Equal(t, 4, *feedbackSession.Rating)

	comments, err := uow.InlineCommentRepository().FindAll(context.Background(),
		specification.BySessionID{SessionID: session.FeedbackSessionId})
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	// Unconfirmed items remain pending.
	shown, err := svc.Show(context.Background(), session.Id)
	require.NoError(t, err)
	for _, item := range shown.ExtractedFeedback {
		if item.FeedbackType == "guide_suggestion" {
			assert.Equal(t, "pending", item.ConfirmationStatus)
		} else {
			assert.Equal(t, "confirmed", item.ConfirmationStatus)
		}
	}
}

func TestVoiceConfirmGuideSuggestionsAppendToOverall(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "overall it lacks energy",
	})
	require.NoError(t, err)
	session, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "never use passive verbs",
	})
	require.NoError(t, err)

	var all []uuid.UUID
	for _, item := range session.ExtractedFeedback {
		all = append(all, item.Id)
	}

	_, err = svc.Confirm(context.Background(), session.Id, &dto.ConfirmFeedbackRequest{ConfirmedIds: all})
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(context.Background())
	feedbackSession, err := uow.FeedbackSessionRepository().FindOne(context.Background(),
		specification.ByID{ID: session.FeedbackSessionId})
	require.NoError(t, err)
	require.NotNil(t, feedbackSession.OverallFeedback)
	assert.Contains(t, *feedbackSession.OverallFeedback, "Suggested Guide Rules:")
	assert.Contains(t, *feedbackSession.OverallFeedback, "- [Mock] Suggested rule")
}

func TestVoiceConfirmRejectedItems(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	session, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{
		Text: "the first line feels flat",
	})
	require.NoError(t, err)
	require.Len(t, session.ExtractedFeedback, 1)

	res, err := svc.Confirm(context.Background(), session.Id, &dto.ConfirmFeedbackRequest{
		RejectedIds: []uuid.UUID{session.ExtractedFeedback[0].Id},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.InlineCommentsCreated)

	shown, err := svc.Show(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, "rejected", shown.ExtractedFeedback[0].ConfirmationStatus)
}

func TestVoiceConfirmTwiceBlocked(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), session.Id, &dto.ConfirmFeedbackRequest{})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), session.Id, &dto.ConfirmFeedbackRequest{})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

func TestVoiceCompleteRunsBatchExtraction(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	// Simulate an imported transcript: messages exist, no per-turn items.
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ConversationMessageRepository().Create(context.Background(), &entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: session.Id,
		Role:           entity.RoleSme,
		Content:        "the first line feels flat",
		CreatedAt:      time.Now(),
	}))

	completed, err := svc.Complete(context.Background(), session.Id)
	require.NoError(t, err)

	assert.Equal(t, "completed", completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	require.Len(t, completed.ExtractedFeedback, 1)
	assert.Equal(t, "inline_comment", completed.ExtractedFeedback[0].FeedbackType)
}

func TestVoiceCancel(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)

	session, err := svc.Start(context.Background(), poem.Id)
	require.NoError(t, err)

	res, err := svc.Cancel(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)

	_, err = svc.Cancel(context.Background(), session.Id)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))

	_, err = svc.SendMessage(context.Background(), session.Id, &dto.VoiceMessageInput{Text: "hello"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

// scriptedInterviewer returns a fixed turn regardless of input.
type scriptedInterviewer struct {
	turn *interviewer.Turn
}

func (s *scriptedInterviewer) Respond(ctx context.Context, poem, guide string, history []interviewer.Message, smeMessage string) (*interviewer.Turn, error) {
	return s.turn, nil
}

func (s *scriptedInterviewer) ExtractAll(ctx context.Context, poem, guide string, history []interviewer.Message) ([]interviewer.Item, error) {
	return nil, nil
}

// beginHookFactory runs a callback just before each transaction starts,
// standing in for a writer that commits in the gap between the unguarded
// read and Begin.
type beginHookFactory struct {
	inner   unitofwork.RepositoryFactory
	onBegin func()
}

func (f *beginHookFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &beginHookUow{UnitOfWork: f.inner.NewUnitOfWork(ctx), factory: f}
}

type beginHookUow struct {
	unitofwork.UnitOfWork
	factory *beginHookFactory
}

func (u *beginHookUow) Begin(ctx context.Context) error {
	if u.factory.onBegin != nil {
		u.factory.onBegin()
	}
	return u.UnitOfWork.Begin(ctx)
}

func TestVoiceShowReplaysConversationChronologically(t *testing.T) {
	factory := newTestFactory()
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, factory, voiceTestPoem)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	feedbackSession := entity.FeedbackSession{
		Id:        uuid.New(),
		PoemId:    poem.Id,
		Status:    entity.FeedbackInProgress,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.FeedbackSessionRepository().Create(ctx, &feedbackSession))
	voiceSession := entity.VoiceFeedbackSession{
		Id:                uuid.New(),
		FeedbackSessionId: feedbackSession.Id,
		Status:            entity.VoiceSessionActive,
		CreatedAt:         time.Now(),
	}
	require.NoError(t, uow.VoiceSessionRepository().Create(ctx, &voiceSession))

	// Rows land in the store newest-first; the response must still replay
	// them in conversation order.
	base := time.Now()
	reply := entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: voiceSession.Id,
		Role:           entity.RoleAi,
		Content:        "And what about the ending?",
		CreatedAt:      base.Add(2 * time.Second),
	}
	require.NoError(t, uow.ConversationMessageRepository().Create(ctx, &reply))
	smeTurn := entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: voiceSession.Id,
		Role:           entity.RoleSme,
		Content:        "The opening feels static",
		CreatedAt:      base.Add(time.Second),
	}
	require.NoError(t, uow.ConversationMessageRepository().Create(ctx, &smeTurn))
	greeting := entity.ConversationMessage{
		Id:             uuid.New(),
		VoiceSessionId: voiceSession.Id,
		Role:           entity.RoleAi,
		Content:        "What stands out to you?",
		CreatedAt:      base,
	}
	require.NoError(t, uow.ConversationMessageRepository().Create(ctx, &greeting))

	later := entity.ExtractedFeedback{
		Id:                 uuid.New(),
		VoiceSessionId:     voiceSession.Id,
		FeedbackType:       entity.FeedbackTypeOverall,
		Content:            "second observation",
		ConfirmationStatus: entity.ConfirmationPending,
		CreatedAt:          base.Add(3 * time.Second),
	}
	require.NoError(t, uow.ExtractedFeedbackRepository().Create(ctx, &later))
	earlier := entity.ExtractedFeedback{
		Id:                 uuid.New(),
		VoiceSessionId:     voiceSession.Id,
		FeedbackType:       entity.FeedbackTypeOverall,
		Content:            "first observation",
		ConfirmationStatus: entity.ConfirmationPending,
		CreatedAt:          base,
	}
	require.NoError(t, uow.ExtractedFeedbackRepository().Create(ctx, &earlier))

	session, err := svc.Show(ctx, voiceSession.Id)
	require.NoError(t, err)

	require.Len(t, session.Messages, 3)
	assert.Equal(t, "What stands out to you?", session.Messages[0].Content)
	assert.Equal(t, "The opening feels static", session.Messages[1].Content)
	assert.Equal(t, "And what about the ending?", session.Messages[2].Content)

	require.Len(t, session.ExtractedFeedback, 2)
	assert.Equal(t, "first observation", session.ExtractedFeedback[0].Content)
	assert.Equal(t, "second observation", session.ExtractedFeedback[1].Content)
}

func TestVoiceConfirmRejectsConcurrentSubmission(t *testing.T) {
	inner := newTestFactory()
	factory := &beginHookFactory{inner: inner}
	svc := newVoiceService(t, factory)
	poem := seedPoem(t, inner, voiceTestPoem)
	ctx := context.Background()

	session, err := svc.Start(ctx, poem.Id)
	require.NoError(t, err)
	resp, err := svc.SendMessage(ctx, session.Id, &dto.VoiceMessageInput{Text: "the first line feels static"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ExtractedFeedback)
	itemId := resp.ExtractedFeedback[0].Id

	// Another confirm submits the parent session right before this one's
	// transaction opens.
	factory.onBegin = func() {
		uow := inner.NewUnitOfWork(ctx)
		fs, err := uow.FeedbackSessionRepository().FindOne(ctx, specification.ByID{ID: session.FeedbackSessionId})
		require.NoError(t, err)
		require.NotNil(t, fs)
		fs.Status = entity.FeedbackSubmitted
		require.NoError(t, uow.FeedbackSessionRepository().Update(ctx, fs))
	}

	_, err = svc.Confirm(ctx, session.Id, &dto.ConfirmFeedbackRequest{ConfirmedIds: []uuid.UUID{itemId}})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	factory.onBegin = nil

	uow := inner.NewUnitOfWork(ctx)
	comments, err := uow.InlineCommentRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.FeedbackSessionId})
	require.NoError(t, err)
	assert.Empty(t, comments)

	item, err := uow.ExtractedFeedbackRepository().FindOne(ctx, specification.ByID{ID: itemId})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, entity.ConfirmationPending, item.ConfirmationStatus)
}

func TestVoiceSendMessageDropsOutOfRangeOffsets(t *testing.T) {
	factory := newTestFactory()
	guideService := newTestGuideService(t, factory)

	badStart, badEnd := 0, len(voiceTestPoem)+40
	negStart, negEnd := -3, 5
	goodStart, goodEnd := 4, 7
	iv := &scriptedInterviewer{turn: &interviewer.Turn{
		FollowUpQuestion: "Anything else?",
		ExtractedItems: []interviewer.Item{
			{FeedbackType: "inline_comment", Content: "runs past the poem", StartOffset: &badStart, EndOffset: &badEnd, Confidence: 0.5},
			{FeedbackType: "inline_comment", Content: "starts before the poem", StartOffset: &negStart, EndOffset: &negEnd, Confidence: 0.5},
			{FeedbackType: "inline_comment", Content: "solid image", StartOffset: &goodStart, EndOffset: &goodEnd, Confidence: 0.5},
		},
	}}
	svc := NewVoiceService(factory, guideService, iv, transcribe.NewMockTranscriber(), audiostore.NewStore(t.TempDir()), nopLogger{})

	poem := seedPoem(t, factory, voiceTestPoem)
	ctx := context.Background()
	session, err := svc.Start(ctx, poem.Id)
	require.NoError(t, err)

	resp, err := svc.SendMessage(ctx, session.Id, &dto.VoiceMessageInput{Text: "the middle drags"})
	require.NoError(t, err)
	require.Len(t, resp.ExtractedFeedback, 3)

	for _, item := range resp.ExtractedFeedback {
		switch item.Content {
		case "runs past the poem", "starts before the poem":
			assert.Nil(t, item.StartOffset, item.Content)
			assert.Nil(t, item.EndOffset, item.Content)
		case "solid image":
			require.NotNil(t, item.StartOffset)
			require.NotNil(t, item.EndOffset)
			assert.Equal(t, goodStart, *item.StartOffset)
			assert.Equal(t, goodEnd, *item.EndOffset)
		}
	}
}
