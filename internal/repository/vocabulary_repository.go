//go:generate mockery --name VocabularyRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VocabularyRepository interface {
	Create(ctx context.Context, db *gorm.DB, vocab *model.Vocabulary) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id uuid.UUID) (*model.Vocabulary, error)
	List(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, filter model.VocabularyFilter) ([]*model.Vocabulary, int64, error)
	FindActive(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]*model.Vocabulary, error)
	FindFallback(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]*model.Vocabulary, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]*model.Vocabulary, error)
	Update(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID, updates map[string]interface{}) error
	IncrementReview(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID, reviewedAt time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID) error
	ClaimUnowned(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
}

type gormVocabularyRepository struct{}

func NewGormVocabularyRepository() VocabularyRepository {
	return &gormVocabularyRepository{}
}

func (r *gormVocabularyRepository) Create(ctx context.Context, db *gorm.DB, vocab *model.Vocabulary) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(vocab)
	if result.Error != nil {
		logger.Error("Error creating vocabulary in DB",
			"error", result.Error,
			"english", vocab.English,
		)
		return fmt.Errorf("gormVocabularyRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormVocabularyRepository) FindByID(ctx context.Context, db *gorm.DB, ownerID, id uuid.UUID) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocab model.Vocabulary
	// 他ユーザーの単語は存在しないものとして扱う
	result := db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&vocab)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary by ID in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"vocabulary_id", id.String(),
		)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByID: %w", result.Error)
	}
	return &vocab, nil
}

// List は検索条件に一致する単語を作成日時の降順で返し、条件に一致する総件数も返します
func (r *gormVocabularyRepository) List(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, filter model.VocabularyFilter) ([]*model.Vocabulary, int64, error) {
	logger := middleware.GetLogger(ctx)
	query := applyFilter(db.WithContext(ctx).Model(&model.Vocabulary{}).Where("owner_id = ?", ownerID), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Error counting vocabularies in DB", "error", err, "owner_id", ownerID.String())
		return nil, 0, fmt.Errorf("gormVocabularyRepository.List: %w", err)
	}

	var vocabs []*model.Vocabulary
	q := query.Order("created_at DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&vocabs).Error; err != nil {
		logger.Error("Error listing vocabularies in DB", "error", err, "owner_id", ownerID.String())
		return nil, 0, fmt.Errorf("gormVocabularyRepository.List: %w", err)
	}
	return vocabs, total, nil
}

func applyFilter(query *gorm.DB, filter model.VocabularyFilter) *gorm.DB {
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		query = query.Where(`(LOWER(english) LIKE ? ESCAPE '\' OR LOWER(vietnamese) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if filter.WordType != "" {
		query = query.Where("word_type = ?", filter.WordType)
	}
	if filter.Memorized != nil {
		query = query.Where("memorized = ?", *filter.Memorized)
	}
	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// FindActive は未暗記の単語をすべて返します (並び順は quiz.Prioritize が決める)
func (r *gormVocabularyRepository) FindActive(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocabs []*model.Vocabulary
	result := db.WithContext(ctx).Where("owner_id = ? AND memorized = ?", ownerID, false).Find(&vocabs)
	if result.Error != nil {
		logger.Error("Error finding active vocabularies in DB", "error", result.Error, "owner_id", ownerID.String())
		return nil, fmt.Errorf("gormVocabularyRepository.FindActive: %w", result.Error)
	}
	return vocabs, nil
}

// FindFallback は memorized を問わず、excludeIDs 以外の単語を最大 limit 件返します
func (r *gormVocabularyRepository) FindFallback(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, excludeIDs []uuid.UUID, limit int) ([]*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocabs []*model.Vocabulary
	query := db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("created_at DESC").Find(&vocabs).Error; err != nil {
		logger.Error("Error finding fallback vocabularies in DB", "error", err, "owner_id", ownerID.String())
		return nil, fmt.Errorf("gormVocabularyRepository.FindFallback: %w", err)
	}
	return vocabs, nil
}

func (r *gormVocabularyRepository) FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) ([]*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)
	var vocabs []*model.Vocabulary
	result := db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&vocabs)
	if result.Error != nil {
		logger.Error("Error finding vocabularies by owner in DB", "error", result.Error, "owner_id", ownerID.String())
		return nil, fmt.Errorf("gormVocabularyRepository.FindByOwner: %w", result.Error)
	}
	return vocabs, nil
}

func (r *gormVocabularyRepository) Update(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Vocabulary{}).Where("owner_id = ? AND id = ?", ownerID, id).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating vocabulary in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"vocabulary_id", id.String(),
		)
		return fmt.Errorf("gormVocabularyRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// IncrementReview は review_count を1増やし last_reviewed を更新します。加算はDB側で行います
func (r *gormVocabularyRepository) IncrementReview(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID, reviewedAt time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Vocabulary{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Updates(map[string]interface{}{
			"last_reviewed": reviewedAt,
			"review_count":  gorm.Expr("review_count + ?", 1),
		})
	if result.Error != nil {
		logger.Error("Error incrementing review count in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"vocabulary_id", id.String(),
		)
		return fmt.Errorf("gormVocabularyRepository.IncrementReview: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormVocabularyRepository) Delete(ctx context.Context, tx *gorm.DB, ownerID, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&model.Vocabulary{})
	if result.Error != nil {
		logger.Error("Error deleting vocabulary in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"vocabulary_id", id.String(),
		)
		return fmt.Errorf("gormVocabularyRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ClaimUnowned は所有者のいない (移行前の) 単語を ownerID に割り当て、件数を返します
func (r *gormVocabularyRepository) ClaimUnowned(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Vocabulary{}).Where("owner_id IS NULL").Update("owner_id", ownerID)
	if result.Error != nil {
		logger.Error("Error claiming unowned vocabularies in DB", "error", result.Error, "owner_id", ownerID.String())
		return 0, fmt.Errorf("gormVocabularyRepository.ClaimUnowned: %w", result.Error)
	}
	return result.RowsAffected, nil
}
