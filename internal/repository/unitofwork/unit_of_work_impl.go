package unitofwork

import (
	"context"
	"fmt"

	"ai-poemreview-be/internal/repository/contract"
	"ai-poemreview-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil when not in one
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) PoemRepository() contract.PoemRepository {
	return implementation.NewPoemRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GuideVersionRepository() contract.GuideVersionRepository {
	return implementation.NewGuideVersionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FeedbackSessionRepository() contract.FeedbackSessionRepository {
	return implementation.NewFeedbackSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) InlineCommentRepository() contract.InlineCommentRepository {
	return implementation.NewInlineCommentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VoiceSessionRepository() contract.VoiceSessionRepository {
	return implementation.NewVoiceSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConversationMessageRepository() contract.ConversationMessageRepository {
	return implementation.NewConversationMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ExtractedFeedbackRepository() contract.ExtractedFeedbackRepository {
	return implementation.NewExtractedFeedbackRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RevisionRepository() contract.RevisionRepository {
	return implementation.NewRevisionRepository(u.getDB())
}
