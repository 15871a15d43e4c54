package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-poemreview-be/internal/dto"
	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/pkg/apperr"
	"ai-poemreview-be/internal/repository/specification"
	"ai-poemreview-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRevisionService(t *testing.T, factory unitofwork.RepositoryFactory) (IRevisionService, IGuideService) {
	t.Helper()
	guideService := newTestGuideService(t, factory)
	return NewRevisionService(factory, guideService, nopLogger{}), guideService
}

func seedRevision(t *testing.T, factory unitofwork.RepositoryFactory, poemId uuid.UUID, guideChanges *string) *entity.Revision {
	t.Helper()
	rationale := "Based on SME feedback, the following changes were made:\n• test"
	revision := &entity.Revision{
		Id:                   uuid.New(),
		SessionId:            uuid.New(),
		OriginalPoemId:       poemId,
		RevisedPoem:          "revised poem text",
		ProposedGuideChanges: guideChanges,
		Rationale:            &rationale,
		PoemAccepted:         entity.DecisionPending,
		GuideChangesAccepted: entity.DecisionPending,
		CreatedAt:            time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.RevisionRepository().Create(context.Background(), revision))
	return revision
}

func TestRevisionShowUnknown(t *testing.T) {
	factory := newTestFactory()
	svc, _ := newRevisionService(t, factory)

	_, err := svc.Show(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRevisionReviewAcceptPoem(t *testing.T) {
	factory := newTestFactory()
	svc, _ := newRevisionService(t, factory)
	poem := seedPoem(t, factory, "original poem")
	revision := seedRevision(t, factory, poem.Id, nil)

	res, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DecisionAccepted, res.PoemAccepted)
	assert.Equal(t, entity.DecisionPending, res.GuideChangesAccepted, "omitted guide decision stays pending")

	stored, err := factory.NewUnitOfWork(context.Background()).
		PoemRepository().FindOne(context.Background(), specification.ByID{ID: poem.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.PoemAccepted, stored.Status)
}

func TestRevisionReviewRejectPoem(t *testing.T) {
	factory := newTestFactory()
	svc, _ := newRevisionService(t, factory)
	poem := seedPoem(t, factory, "original poem")
	revision := seedRevision(t, factory, poem.Id, nil)

	res, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem: false,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DecisionRejected, res.PoemAccepted)

	stored, err := factory.NewUnitOfWork(context.Background()).
		PoemRepository().FindOne(context.Background(), specification.ByID{ID: poem.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.PoemDraft, stored.Status, "rejection leaves the poem status untouched")
}

func TestRevisionReviewEditedPoemOverride(t *testing.T) {
	factory := newTestFactory()
	svc, _ := newRevisionService(t, factory)
	poem := seedPoem(t, factory, "original poem")
	revision := seedRevision(t, factory, poem.Id, nil)

	edited := "the reviewer's own wording"
	res, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem: true,
		EditedPoem: &edited,
	})
	require.NoError(t, err)

	assert.Equal(t, edited, res.RevisedPoem)
}

func TestRevisionReviewAcceptGuideAppendsVersion(t *testing.T) {
	factory := newTestFactory()
	svc, guideService := newRevisionService(t, factory)
	seedGuideVersion(t, factory, 1, "# Guide v1")
	poem := seedPoem(t, factory, "original poem")

	changes := "## SME Feedback Rules\n- Never use the word \"heartbeats\""
	revision := seedRevision(t, factory, poem.Id, &changes)

	acceptGuide := true
	res, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem:         false,
		AcceptGuideChanges: &acceptGuide,
	})
	require.NoError(t, err)

	// Poem and guide decisions are independent.
	assert.Equal(t, entity.DecisionRejected, res.PoemAccepted)
	assert.Equal(t, entity.DecisionAccepted, res.GuideChangesAccepted)

	current, err := guideService.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, current.Version)
	assert.Equal(t, "# Guide v1\n\n"+changes, current.Content)
}

func TestRevisionReviewEditedGuideChangesOverride(t *testing.T) {
	factory := newTestFactory()
	svc, guideService := newRevisionService(t, factory)
	seedGuideVersion(t, factory, 1, "# Guide v1")
	poem := seedPoem(t, factory, "original poem")

	changes := "- proposed rule"
	revision := seedRevision(t, factory, poem.Id, &changes)

	acceptGuide := true
	edited := "- the rule as the reviewer rewrote it"
	_, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem:         true,
		AcceptGuideChanges: &acceptGuide,
		EditedGuideChanges: &edited,
	})
	require.NoError(t, err)

	current, err := guideService.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "# Guide v1\n\n"+edited, current.Content)
}

func TestRevisionReviewRejectGuide(t *testing.T) {
	factory := newTestFactory()
	svc, _ := newRevisionService(t, factory)
	seedGuideVersion(t, factory, 1, "# Guide v1")
	poem := seedPoem(t, factory, "original poem")

	changes := "- proposed rule"
	revision := seedRevision(t, factory, poem.Id, &changes)

	acceptGuide := false
	res, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem:         true,
		AcceptGuideChanges: &acceptGuide,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DecisionRejected, res.GuideChangesAccepted)

	uow := factory.NewUnitOfWork(context.Background())
	max, err := uow.GuideVersionRepository().MaxVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, max, "no guide version appended on rejection")
}

func TestRevisionReviewAcceptGuideWithoutProposal(t *testing.T) {
	factory := newTestFactory()
	svc, _ := newRevisionService(t, factory)
	seedGuideVersion(t, factory, 1, "# Guide v1")
	poem := seedPoem(t, factory, "original poem")
	revision := seedRevision(t, factory, poem.Id, nil)

	acceptGuide := true
	res, err := svc.Review(context.Background(), revision.Id, &dto.ReviewRevisionRequest{
		AcceptPoem:         true,
		AcceptGuideChanges: &acceptGuide,
	})
	require.NoError(t, err)

	// Nothing to apply, the decision stays pending and no version appears.
	assert.Equal(t, entity.DecisionPending, res.GuideChangesAccepted)

	uow := factory.NewUnitOfWork(context.Background())
	max, err := uow.GuideVersionRepository().MaxVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, max)
}
