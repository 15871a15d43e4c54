package service

import (
	"context"
	"errors"
	"testing"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/repository/unitofwork"
	"ai-poemreview-be/pkg/poet"
	"ai-poemreview-be/pkg/reviser"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoemService(t *testing.T, factory unitofwork.RepositoryFactory) IPoemService {
	t.Helper()
	guideService := newTestGuideService(t, factory)
	return NewPoemService(factory, guideService, poet.NewMockPoet(), nopLogger{})
}

func TestPoemGenerate(t *testing.T) {
	factory := newTestFactory()
	svc := newPoemService(t, factory)

	poem, err := svc.Generate(context.Background(), &dto.GeneratePoemRequest{
		Prompt: "Write a poem about a dog",
	})
	require.NoError(t, err)

	assert.Equal(t, "Write a poem about a dog", poem.Prompt)
	assert.Contains(t, poem.Content, "dog")
	assert.Equal(t, "draft", poem.Status)
	// The poem is pinned to the guide version it was written against, here
	// the freshly seeded version 1.
	assert.Equal(t, 1, poem.GuideVersion)
}

func TestPoemGetAll(t *testing.T) {
	factory := newTestFactory()
	svc := newPoemService(t, factory)

	_, err := svc.Generate(context.Background(), &dto.GeneratePoemRequest{Prompt: "a poem about a dog"})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), &dto.GeneratePoemRequest{Prompt: "a poem about rain"})
	require.NoError(t, err)

	poems, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, poems, 2)
}

func TestPoemShowWithFeedbackSessions(t *testing.T) {
	factory := newTestFactory()
	poemSvc := newPoemService(t, factory)
	feedbackSvc := newFeedbackService(t, factory)

	generated, err := poemSvc.Generate(context.Background(), &dto.GeneratePoemRequest{
		Prompt: "a poem about a cat",
	})
	require.NoError(t, err)

	session, err := feedbackSvc.Start(context.Background(), generated.Id)
	require.NoError(t, err)

	_, err = feedbackSvc.AddComment(context.Background(), session.Id, &dto.AddCommentRequest{
		HighlightedText: generated.Content[:5],
		StartOffset:     0,
		EndOffset:       5,
		Comment:         "make this more concrete",
	})
	require.NoError(t, err)

	shown, err := poemSvc.Show(context.Background(), generated.Id)
	require.NoError(t, err)

	assert.Equal(t, generated.Id, shown.Id)
	assert.Equal(t, "under_review", shown.Status)
	require.Len(t, shown.FeedbackSessions, 1)
	assert.Len(t, shown.FeedbackSessions[0].Comments, 1)
}

func TestPoemShowUnknown(t *testing.T) {
	factory := newTestFactory()
	svc := newPoemService(t, factory)

	_, err := svc.Show(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPoemFeedbackRoundTrip(t *testing.T) {
	factory := newTestFactory()
	guideService := newTestGuideService(t, factory)
	poemSvc := NewPoemService(factory, guideService, poet.NewMockPoet(), nopLogger{})
	feedbackSvc := NewFeedbackService(factory, guideService, reviser.NewMechanicalReviser(), nopLogger{})

	generated, err := poemSvc.Generate(context.Background(), &dto.GeneratePoemRequest{
		Prompt: "a poem about a dog",
	})
	require.NoError(t, err)

	session, err := feedbackSvc.Start(context.Background(), generated.Id)
	require.NoError(t, err)
	_, err = feedbackSvc.Submit(context.Background(), session.Id)
	require.NoError(t, err)

	revision, err := feedbackSvc.Process(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, generated.Id, revision.OriginalPoemId)
}
