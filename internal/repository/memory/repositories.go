package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ai-poemreview-be/internal/entity"
	"ai-poemreview-be/internal/repository/specification"

	"github.com/google/uuid"
)

// unsupportedSpec fails loudly so a test never silently matches everything.
func unsupportedSpec(spec specification.Specification) {
	panic(fmt.Sprintf("memory repository: unsupported specification %T", spec))
}

func orderDesc(specs []specification.Specification) (field string, desc bool, found bool) {
	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok {
			return o.Field, o.Desc, true
		}
	}
	return "", false, false
}

func ensureId(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func ensureCreatedAt(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// --- Poem ---

type poemRepository struct {
	store *Store
}

func matchPoem(p *entity.Poem, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *poemRepository) Create(ctx context.Context, poem *entity.Poem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&poem.Id)
	ensureCreatedAt(&poem.CreatedAt)
	r.store.poems = append(r.store.poems, *poem)
	return nil
}

func (r *poemRepository) Update(ctx context.Context, poem *entity.Poem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.poems {
		if r.store.poems[i].Id == poem.Id {
			r.store.poems[i] = *poem
			return nil
		}
	}
	return fmt.Errorf("poem %s not in store", poem.Id)
}

func (r *poemRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Poem, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *poemRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Poem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Poem
	for i := range r.store.poems {
		p := r.store.poems[i]
		if matchPoem(&p, specs) {
			result = append(result, &p)
		}
	}
	if field, desc, ok := orderDesc(specs); ok && field == "created_at" {
		sort.SliceStable(result, func(i, j int) bool {
			if desc {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}
	return result, nil
}

func (r *poemRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// --- GuideVersion ---

type guideVersionRepository struct {
	store *Store
}

func matchGuide(g *entity.GuideVersion, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByVersion:
			if g.Version != s.Version {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *guideVersionRepository) Create(ctx context.Context, version *entity.GuideVersion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&version.Id)
	ensureCreatedAt(&version.CreatedAt)
	r.store.guides = append(r.store.guides, *version)
	return nil
}

func (r *guideVersionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GuideVersion, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *guideVersionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GuideVersion, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.GuideVersion
	for i := range r.store.guides {
		g := r.store.guides[i]
		if matchGuide(&g, specs) {
			result = append(result, &g)
		}
	}
	if field, desc, ok := orderDesc(specs); ok && field == "version" {
		sort.SliceStable(result, func(i, j int) bool {
			if desc {
				return result[i].Version > result[j].Version
			}
			return result[i].Version < result[j].Version
		})
	}
	return result, nil
}

func (r *guideVersionRepository) MaxVersion(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	max := 0
	for i := range r.store.guides {
		if r.store.guides[i].Version > max {
			max = r.store.guides[i].Version
		}
	}
	return max, nil
}

// --- FeedbackSession ---

type feedbackSessionRepository struct {
	store *Store
}

func matchSession(s *entity.FeedbackSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.ByPoemID:
			if s.PoemId != sp.PoemID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *feedbackSessionRepository) Create(ctx context.Context, session *entity.FeedbackSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&session.Id)
	ensureCreatedAt(&session.CreatedAt)
	r.store.sessions = append(r.store.sessions, *session)
	return nil
}

func (r *feedbackSessionRepository) Update(ctx context.Context, session *entity.FeedbackSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.sessions {
		if r.store.sessions[i].Id == session.Id {
			r.store.sessions[i] = *session
			return nil
		}
	}
	return fmt.Errorf("feedback session %s not in store", session.Id)
}

func (r *feedbackSessionRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.FeedbackStatus) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.sessions {
		if r.store.sessions[i].Id == id {
			if r.store.sessions[i].Status != from {
				return false, nil
			}
			r.store.sessions[i].Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *feedbackSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeedbackSession, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *feedbackSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeedbackSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.FeedbackSession
	for i := range r.store.sessions {
		s := r.store.sessions[i]
		if matchSession(&s, specs) {
			result = append(result, &s)
		}
	}
	return result, nil
}

// --- InlineComment ---

type inlineCommentRepository struct {
	store *Store
}

func matchComment(c *entity.InlineComment, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if c.Id != sp.ID {
				return false
			}
		case specification.BySessionID:
			if c.SessionId != sp.SessionID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *inlineCommentRepository) Create(ctx context.Context, comment *entity.InlineComment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&comment.Id)
	ensureCreatedAt(&comment.CreatedAt)
	r.store.comments = append(r.store.comments, *comment)
	return nil
}

func (r *inlineCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.comments {
		if r.store.comments[i].Id == id {
			r.store.comments = append(r.store.comments[:i], r.store.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *inlineCommentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InlineComment, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *inlineCommentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InlineComment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.InlineComment
	for i := range r.store.comments {
		c := r.store.comments[i]
		if matchComment(&c, specs) {
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *inlineCommentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// --- VoiceFeedbackSession ---

type voiceSessionRepository struct {
	store *Store
}

func matchVoiceSession(v *entity.VoiceFeedbackSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if v.Id != sp.ID {
				return false
			}
		case specification.ByFeedbackSessionID:
			if v.FeedbackSessionId != sp.FeedbackSessionID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *voiceSessionRepository) Create(ctx context.Context, session *entity.VoiceFeedbackSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&session.Id)
	ensureCreatedAt(&session.CreatedAt)
	r.store.voiceSessions = append(r.store.voiceSessions, *session)
	return nil
}

func (r *voiceSessionRepository) Update(ctx context.Context, session *entity.VoiceFeedbackSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.voiceSessions {
		if r.store.voiceSessions[i].Id == session.Id {
			r.store.voiceSessions[i] = *session
			return nil
		}
	}
	return fmt.Errorf("voice session %s not in store", session.Id)
}

func (r *voiceSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceFeedbackSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.voiceSessions {
		v := r.store.voiceSessions[i]
		if matchVoiceSession(&v, specs) {
			return &v, nil
		}
	}
	return nil, nil
}

// --- ConversationMessage ---

type conversationMessageRepository struct {
	store *Store
}

func matchMessage(m *entity.ConversationMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByVoiceSessionID:
			if m.VoiceSessionId != sp.VoiceSessionID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *conversationMessageRepository) Create(ctx context.Context, message *entity.ConversationMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&message.Id)
	ensureCreatedAt(&message.CreatedAt)
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *conversationMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.ConversationMessage
	for i := range r.store.messages {
		m := r.store.messages[i]
		if matchMessage(&m, specs) {
			result = append(result, &m)
		}
	}
	if field, desc, ok := orderDesc(specs); ok && field == "created_at" {
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].Id.String() < result[j].Id.String()
			}
			if desc {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}
	return result, nil
}

// --- ExtractedFeedback ---

type extractedFeedbackRepository struct {
	store *Store
}

func matchExtracted(e *entity.ExtractedFeedback, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if e.Id != sp.ID {
				return false
			}
		case specification.ByVoiceSessionID:
			if e.VoiceSessionId != sp.VoiceSessionID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *extractedFeedbackRepository) Create(ctx context.Context, item *entity.ExtractedFeedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&item.Id)
	ensureCreatedAt(&item.CreatedAt)
	r.store.extracted = append(r.store.extracted, *item)
	return nil
}

func (r *extractedFeedbackRepository) Update(ctx context.Context, item *entity.ExtractedFeedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.extracted {
		if r.store.extracted[i].Id == item.Id {
			r.store.extracted[i] = *item
			return nil
		}
	}
	return fmt.Errorf("extracted feedback %s not in store", item.Id)
}

func (r *extractedFeedbackRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExtractedFeedback, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *extractedFeedbackRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExtractedFeedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.ExtractedFeedback
	for i := range r.store.extracted {
		e := r.store.extracted[i]
		if matchExtracted(&e, specs) {
			result = append(result, &e)
		}
	}
	if field, desc, ok := orderDesc(specs); ok && field == "created_at" {
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].Id.String() < result[j].Id.String()
			}
			if desc {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}
	return result, nil
}

// --- Revision ---

type revisionRepository struct {
	store *Store
}

func matchRevision(rev *entity.Revision, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if rev.Id != sp.ID {
				return false
			}
		case specification.BySessionID:
			if rev.SessionId != sp.SessionID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			unsupportedSpec(spec)
		}
	}
	return true
}

func (r *revisionRepository) Create(ctx context.Context, revision *entity.Revision) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ensureId(&revision.Id)
	ensureCreatedAt(&revision.CreatedAt)
	r.store.revisions = append(r.store.revisions, *revision)
	return nil
}

func (r *revisionRepository) Update(ctx context.Context, revision *entity.Revision) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.revisions {
		if r.store.revisions[i].Id == revision.Id {
			r.store.revisions[i] = *revision
			return nil
		}
	}
	return fmt.Errorf("revision %s not in store", revision.Id)
}

func (r *revisionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revision, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.revisions {
		rev := r.store.revisions[i]
		if matchRevision(&rev, specs) {
			return &rev, nil
		}
	}
	return nil, nil
}
