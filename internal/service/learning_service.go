package service

import (
	"context"
	"time"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningService は学習状態 (復習回数・学習済み・暗記済み) を更新します。
// どの操作も (id, ownerID) で絞り込み、見つからなければ NotFound を返します。
type LearningService interface {
	MarkReviewed(ctx context.Context, ownerID, id uuid.UUID) (*model.Vocabulary, error)
	SetStudied(ctx context.Context, ownerID, id uuid.UUID, studied bool) (*model.Vocabulary, error)
	SetMemorized(ctx context.Context, ownerID, id uuid.UUID, memorized bool) (*model.Vocabulary, error)
}

type learningService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
	now       func() time.Time
}

func NewLearningService(db *gorm.DB, vocabRepo repository.VocabularyRepository) LearningService {
	return &learningService{db: db, vocabRepo: vocabRepo, now: time.Now}
}

func (s *learningService) MarkReviewed(ctx context.Context, ownerID, id uuid.UUID) (*model.Vocabulary, error) {
	now := s.now()
	return s.updateAndFetch(ctx, ownerID, id, func(tx *gorm.DB) error {
		return s.vocabRepo.IncrementReview(ctx, tx, ownerID, id, now)
	})
}

// SetStudied は studied と lastStudied を必ず一緒に更新します
func (s *learningService) SetStudied(ctx context.Context, ownerID, id uuid.UUID, studied bool) (*model.Vocabulary, error) {
	updates := map[string]interface{}{
		"studied":      studied,
		"last_studied": nil,
	}
	if studied {
		updates["last_studied"] = s.now()
	}
	return s.updateAndFetch(ctx, ownerID, id, func(tx *gorm.DB) error {
		return s.vocabRepo.Update(ctx, tx, ownerID, id, updates)
	})
}

func (s *learningService) SetMemorized(ctx context.Context, ownerID, id uuid.UUID, memorized bool) (*model.Vocabulary, error) {
	return s.updateAndFetch(ctx, ownerID, id, func(tx *gorm.DB) error {
		return s.vocabRepo.Update(ctx, tx, ownerID, id, map[string]interface{}{"memorized": memorized})
	})
}

// updateAndFetch は更新と再取得を同じトランザクションで行います
func (s *learningService) updateAndFetch(ctx context.Context, ownerID, id uuid.UUID, update func(tx *gorm.DB) error) (*model.Vocabulary, error) {
	var updated *model.Vocabulary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := update(tx); err != nil {
			return err
		}
		var err error
		updated, err = s.vocabRepo.FindByID(ctx, tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, vocabularyLookupError(ctx, err)
	}
	middleware.GetLogger(ctx).Debug("Learning state updated", "vocabulary_id", id.String())
	return updated, nil
}
