// internal/service/vocabulary_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_vocab_quiz/internal/lookup"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PronunciationLookup は英単語の発音記号を返します。外部APIの失敗時も必ず値を返します
type PronunciationLookup interface {
	Pronunciation(ctx context.Context, word string) string
}

// ListVocabularyParams は一覧取得のクエリです。page は1始まり
type ListVocabularyParams struct {
	Search    string
	WordType  string
	Memorized *bool
	Page      int
	Limit     int
}

type VocabularyList struct {
	Vocabularies []*model.Vocabulary `json:"vocabularies"`
	Pagination   model.Pagination    `json:"pagination"`
}

type VocabularyService interface {
	Add(ctx context.Context, ownerID uuid.UUID, req *model.AddVocabularyRequest) (*model.Vocabulary, error)
	List(ctx context.Context, ownerID uuid.UUID, params ListVocabularyParams) (*VocabularyList, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Vocabulary, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateVocabularyRequest) (*model.Vocabulary, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// MigrateLegacy は所有者のいない既存データを ownerID に引き継ぎます
	MigrateLegacy(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type vocabularyService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
	lookup    PronunciationLookup
	now       func() time.Time
}

func NewVocabularyService(db *gorm.DB, vocabRepo repository.VocabularyRepository, lookup PronunciationLookup) VocabularyService {
	return &vocabularyService{
		db:        db,
		vocabRepo: vocabRepo,
		lookup:    lookup,
		now:       time.Now,
	}
}

func normalizeEnglish(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validatePair(english, vietnamese string) error {
	if english == "" {
		return model.NewAppError("VALIDATION_ERROR", "English and Vietnamese are required", "english", model.ErrInvalidInput)
	}
	if vietnamese == "" {
		return model.NewAppError("VALIDATION_ERROR", "English and Vietnamese are required", "vietnamese", model.ErrInvalidInput)
	}
	return nil
}

func (s *vocabularyService) Add(ctx context.Context, ownerID uuid.UUID, req *model.AddVocabularyRequest) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)

	english := normalizeEnglish(req.English)
	vietnamese := strings.TrimSpace(req.Vietnamese)
	if err := validatePair(english, vietnamese); err != nil {
		return nil, err
	}

	// 発音記号がなければ外部辞書から補完
	pronunciation := strings.TrimSpace(req.Pronunciation)
	if pronunciation == "" {
		pronunciation = s.derivePronunciation(ctx, english)
	}

	vocab := &model.Vocabulary{
		ID:            uuid.New(),
		OwnerID:       &ownerID,
		English:       english,
		Vietnamese:    vietnamese,
		WordType:      model.ParseWordType(req.WordType),
		Pronunciation: pronunciation,
		CreatedAt:     s.now(),
	}
	if err := s.vocabRepo.Create(ctx, s.db, vocab); err != nil {
		logger.Error("Error creating vocabulary", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Vocabulary added", "vocabulary_id", vocab.ID.String(), "english", vocab.English)
	return vocab, nil
}

func (s *vocabularyService) List(ctx context.Context, ownerID uuid.UUID, params ListVocabularyParams) (*VocabularyList, error) {
	logger := middleware.GetLogger(ctx)
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		return nil, model.NewAppError("VALIDATION_ERROR", "limit must be a positive integer", "limit", model.ErrInvalidInput)
	}

	filter := model.VocabularyFilter{
		Search:    params.Search,
		Memorized: params.Memorized,
		Offset:    (params.Page - 1) * params.Limit,
		Limit:     params.Limit,
	}
	// "all" は絞り込みなし
	if params.WordType != "" && params.WordType != "all" {
		filter.WordType = params.WordType
	}

	vocabs, total, err := s.vocabRepo.List(ctx, s.db, ownerID, filter)
	if err != nil {
		logger.Error("Error listing vocabularies", "error", err)
		return nil, model.ErrInternalServer
	}
	if vocabs == nil {
		vocabs = []*model.Vocabulary{}
	}

	return &VocabularyList{
		Vocabularies: vocabs,
		Pagination:   model.NewPagination(params.Page, params.Limit, len(vocabs), int(total)),
	}, nil
}

func (s *vocabularyService) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Vocabulary, error) {
	vocab, err := s.vocabRepo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return nil, vocabularyLookupError(ctx, err)
	}
	return vocab, nil
}

// vocabularyLookupError はリポジトリのエラーをクライアント向けに変換します
func vocabularyLookupError(ctx context.Context, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError("VOCABULARY_NOT_FOUND", "Vocabulary not found", "", model.ErrNotFound)
	}
	middleware.GetLogger(ctx).Error("Error accessing vocabulary", "error", err)
	return model.ErrInternalServer
}

// Update は編集可能な項目をすべて置き換えます。
// 英単語が変わり発音記号が指定されていなければ、発音記号を引き直します。
func (s *vocabularyService) Update(ctx context.Context, ownerID, id uuid.UUID, req *model.UpdateVocabularyRequest) (*model.Vocabulary, error) {
	logger := middleware.GetLogger(ctx)

	english := normalizeEnglish(req.English)
	vietnamese := strings.TrimSpace(req.Vietnamese)
	if err := validatePair(english, vietnamese); err != nil {
		return nil, err
	}

	existing, err := s.vocabRepo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return nil, vocabularyLookupError(ctx, err)
	}

	pronunciation := strings.TrimSpace(req.Pronunciation)
	if pronunciation == "" {
		if existing.English != english && s.lookup != nil {
			pronunciation = s.derivePronunciation(ctx, english)
		} else {
			pronunciation = existing.Pronunciation
		}
	}

	// memorized を省略した場合は false (全置換)
	memorized := req.Memorized != nil && *req.Memorized

	var updated *model.Vocabulary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"english":       english,
			"vietnamese":    vietnamese,
			"word_type":     model.ParseWordType(req.WordType),
			"pronunciation": pronunciation,
			"memorized":     memorized,
			"updated_at":    s.now(),
		}
		if err := s.vocabRepo.Update(ctx, tx, ownerID, id, updates); err != nil {
			return err
		}
		updated, err = s.vocabRepo.FindByID(ctx, tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, vocabularyLookupError(ctx, err)
	}

	logger.Info("Vocabulary updated", "vocabulary_id", id.String())
	return updated, nil
}

func (s *vocabularyService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.vocabRepo.Delete(ctx, s.db, ownerID, id); err != nil {
		return vocabularyLookupError(ctx, err)
	}
	middleware.GetLogger(ctx).Info("Vocabulary deleted", "vocabulary_id", id.String())
	return nil
}

func (s *vocabularyService) MigrateLegacy(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var claimed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.vocabRepo.ClaimUnowned(ctx, tx, ownerID)
		claimed = n
		return err
	})
	if err != nil {
		logger.Error("Error migrating legacy vocabularies", "error", err)
		return 0, model.ErrInternalServer
	}
	logger.Info("Legacy vocabularies migrated", "count", claimed)
	return claimed, nil
}

// derivePronunciation は外部辞書から発音記号を補完し、保存できる長さに収めます
func (s *vocabularyService) derivePronunciation(ctx context.Context, english string) string {
	if s.lookup == nil {
		return ""
	}
	return lookup.ClampPronunciation(s.lookup.Pronunciation(ctx, english))
}
