package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/memory"
	"ai-poemreview-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// nopLogger discards everything; the services under test only need the
// interface satisfied.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

const testGuideContent = "# Poetry Guide\n\nUse concrete detail.\n"

func newTestFactory() unitofwork.RepositoryFactory {
	return memory.NewFactory(memory.NewStore())
}

func newTestGuideService(t *testing.T, factory unitofwork.RepositoryFactory) IGuideService {
	t.Helper()
	seedPath := filepath.Join(t.TempDir(), "poetry_guide.md")
	require.NoError(t, os.WriteFile(seedPath, []byte(testGuideContent), 0o644))
	return NewGuideService(factory, seedPath, nopLogger{})
}

func seedPoem(t *testing.T, factory unitofwork.RepositoryFactory, content string) *entity.Poem {
	t.Helper()
	poem := &entity.Poem{
		Id:           uuid.New(),
		Prompt:       "a poem about a dog",
		Content:      content,
		GuideVersion: 1,
		Status:       entity.PoemDraft,
		CreatedAt:    time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.PoemRepository().Create(context.Background(), poem))
	return poem
}

func seedGuideVersion(t *testing.T, factory unitofwork.RepositoryFactory, version int, content string) {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.GuideVersionRepository().Create(context.Background(), &entity.GuideVersion{
		Id:        uuid.New(),
		Content:   content,
		Version:   version,
		CreatedAt: time.Now(),
	}))
}
