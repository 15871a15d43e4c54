// Package memory provides in-memory implementations of the repository
// contracts. They back the service-level tests and mirror the behavior of the
// GORM implementations closely enough for lifecycle testing: insertion order
// is preserved, Begin snapshots the store and Rollback restores it.
package memory

import (
	"context"
	"sync"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/contract"
	"ai-poemreview-be/internal/repository/unitofwork"
)

type Store struct {
	mu sync.Mutex

	poems         []entity.Poem
	guides        []entity.GuideVersion
	sessions      []entity.FeedbackSession
	comments      []entity.InlineComment
	voiceSessions []entity.VoiceFeedbackSession
	messages      []entity.ConversationMessage
	extracted     []entity.ExtractedFeedback
	revisions     []entity.Revision

	snapshot *storeSnapshot
}

type storeSnapshot struct {
	poems         []entity.Poem
	guides        []entity.GuideVersion
	sessions      []entity.FeedbackSession
	comments      []entity.InlineComment
	voiceSessions []entity.VoiceFeedbackSession
	messages      []entity.ConversationMessage
	extracted     []entity.ExtractedFeedback
	revisions     []entity.Revision
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) takeSnapshot() {
	s.snapshot = &storeSnapshot{
		poems:         append([]entity.Poem(nil), s.poems...),
		guides:        append([]entity.GuideVersion(nil), s.guides...),
		sessions:      append([]entity.FeedbackSession(nil), s.sessions...),
		comments:      append([]entity.InlineComment(nil), s.comments...),
		voiceSessions: append([]entity.VoiceFeedbackSession(nil), s.voiceSessions...),
		messages:      append([]entity.ConversationMessage(nil), s.messages...),
		extracted:     append([]entity.ExtractedFeedback(nil), s.extracted...),
		revisions:     append([]entity.Revision(nil), s.revisions...),
	}
}

func (s *Store) restoreSnapshot() {
	if s.snapshot == nil {
		return
	}
	s.poems = s.snapshot.poems
	s.guides = s.snapshot.guides
	s.sessions = s.snapshot.sessions
	s.comments = s.snapshot.comments
	s.voiceSessions = s.snapshot.voiceSessions
	s.messages = s.snapshot.messages
	s.extracted = s.snapshot.extracted
	s.revisions = s.snapshot.revisions
	s.snapshot = nil
}

// Factory implements unitofwork.RepositoryFactory over a shared Store.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{store: f.store}
}

type memoryUnitOfWork struct {
	store *Store
	inTx  bool
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.takeSnapshot()
	u.inTx = true
	return nil
}

func (u *memoryUnitOfWork) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.snapshot = nil
	u.inTx = false
	return nil
}

func (u *memoryUnitOfWork) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.inTx {
		return nil
	}
	u.store.restoreSnapshot()
	u.inTx = false
	return nil
}

func (u *memoryUnitOfWork) PoemRepository() contract.PoemRepository {
	return &poemRepository{store: u.store}
}

func (u *memoryUnitOfWork) GuideVersionRepository() contract.GuideVersionRepository {
	return &guideVersionRepository{store: u.store}
}

func (u *memoryUnitOfWork) FeedbackSessionRepository() contract.FeedbackSessionRepository {
	return &feedbackSessionRepository{store: u.store}
}

func (u *memoryUnitOfWork) InlineCommentRepository() contract.InlineCommentRepository {
	return &inlineCommentRepository{store: u.store}
}

func (u *memoryUnitOfWork) VoiceSessionRepository() contract.VoiceSessionRepository {
	return &voiceSessionRepository{store: u.store}
}

func (u *memoryUnitOfWork) ConversationMessageRepository() contract.ConversationMessageRepository {
	return &conversationMessageRepository{store: u.store}
}

func (u *memoryUnitOfWork) ExtractedFeedbackRepository() contract.ExtractedFeedbackRepository {
	return &extractedFeedbackRepository{store: u.store}
}

func (u *memoryUnitOfWork) RevisionRepository() contract.RevisionRepository {
	return &revisionRepository{store: u.store}
}
