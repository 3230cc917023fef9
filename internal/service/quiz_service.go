package service

import (
	"context"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/quiz"
	"go_vocab_quiz/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewBatch struct {
	Vocabularies []*model.Vocabulary `json:"vocabularies"`
	Pagination   model.Pagination    `json:"pagination"`
}

type MultipleChoiceList struct {
	Questions  []model.MultipleChoiceQuestion `json:"questions"`
	Pagination model.Pagination               `json:"pagination"`
}

// QuizService は保存済みの単語から復習カード・4択・穴埋め問題を作ります。
// 毎回DBの最新状態から優先度を計算し直します。
type QuizService interface {
	ReviewBatch(ctx context.Context, ownerID uuid.UUID, page, limit int) (*ReviewBatch, error)
	MultipleChoice(ctx context.Context, ownerID uuid.UUID) (*model.MultipleChoiceQuestion, error)
	MultipleChoiceList(ctx context.Context, ownerID uuid.UUID, limit int) (*MultipleChoiceList, error)
	FillBlank(ctx context.Context, ownerID uuid.UUID) (*model.FillBlankQuestion, error)
	CheckFillBlank(ctx context.Context, ownerID, vocabularyID uuid.UUID, answer string) (*model.CheckFillBlankResponse, error)
}

type quizService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
	generator *quiz.Generator
}

func NewQuizService(db *gorm.DB, vocabRepo repository.VocabularyRepository, generator *quiz.Generator) QuizService {
	return &quizService{db: db, vocabRepo: vocabRepo, generator: generator}
}

var errNoContent = model.NewAppError("NO_CONTENT_AVAILABLE", "No vocabulary available for review", "", model.ErrNoContent)

// prioritized は未暗記の単語を優先度順で返します。空なら NoContent です
func (s *quizService) prioritized(ctx context.Context, ownerID uuid.UUID) ([]*model.Vocabulary, error) {
	active, err := s.vocabRepo.FindActive(ctx, s.db, ownerID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error loading active vocabularies", "error", err)
		return nil, model.ErrInternalServer
	}
	prioritized := quiz.Prioritize(active)
	if len(prioritized) == 0 {
		return nil, errNoContent
	}
	return prioritized, nil
}

// ReviewBatch はグループ内シャッフルした優先度リストの1ページを返します
func (s *quizService) ReviewBatch(ctx context.Context, ownerID uuid.UUID, page, limit int) (*ReviewBatch, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return nil, model.NewAppError("VALIDATION_ERROR", "limit must be a positive integer", "limit", model.ErrInvalidInput)
	}

	prioritized, err := s.prioritized(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ordered := s.generator.GroupedShuffle(prioritized)
	items := quiz.Paginate(ordered, page, limit)

	return &ReviewBatch{
		Vocabularies: items,
		Pagination:   model.NewPagination(page, limit, len(items), len(ordered)),
	}, nil
}

func (s *quizService) MultipleChoice(ctx context.Context, ownerID uuid.UUID) (*model.MultipleChoiceQuestion, error) {
	prioritized, err := s.prioritized(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	target, err := s.generator.PickTarget(prioritized)
	if err != nil {
		return nil, errNoContent
	}
	q := s.buildQuestion(ctx, ownerID, target, s.generator.SinglePool(prioritized))
	return &q, nil
}

// MultipleChoiceList は一度のシャッフルで決めた順に limit 問をまとめて作ります。
// 誤答プールは全問で共有します。
func (s *quizService) MultipleChoiceList(ctx context.Context, ownerID uuid.UUID, limit int) (*MultipleChoiceList, error) {
	if limit < 1 {
		return nil, model.NewAppError("VALIDATION_ERROR", "limit must be a positive integer", "limit", model.ErrInvalidInput)
	}
	prioritized, err := s.prioritized(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	targets := quiz.Paginate(s.generator.GroupedShuffle(prioritized), 1, limit)
	pool := s.generator.ListPool(prioritized)

	questions := make([]model.MultipleChoiceQuestion, 0, len(targets))
	for _, target := range targets {
		questions = append(questions, s.buildQuestion(ctx, ownerID, target, pool))
	}

	return &MultipleChoiceList{
		Questions:  questions,
		Pagination: model.NewPagination(1, limit, len(questions), len(prioritized)),
	}, nil
}

// buildQuestion は誤答を選んで4択問題にします。補充用の検索に失敗してもプレースホルダで埋めて続行します
func (s *quizService) buildQuestion(ctx context.Context, ownerID uuid.UUID, target *model.Vocabulary, pool []*model.Vocabulary) model.MultipleChoiceQuestion {
	logger := middleware.GetLogger(ctx)
	fallback := func(exclude []uuid.UUID, limit int) ([]*model.Vocabulary, error) {
		return s.vocabRepo.FindFallback(ctx, s.db, ownerID, exclude, limit)
	}

	distractors, err := s.generator.Distractors(pool, target, fallback)
	if err != nil {
		logger.Warn("Fallback distractor query failed, padding with placeholder", "error", err, "vocabulary_id", target.ID.String())
	}
	return s.generator.BuildMultipleChoice(target, distractors)
}

func (s *quizService) FillBlank(ctx context.Context, ownerID uuid.UUID) (*model.FillBlankQuestion, error) {
	prioritized, err := s.prioritized(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	target, err := s.generator.PickTarget(prioritized)
	if err != nil {
		return nil, errNoContent
	}
	q := quiz.BuildFillBlank(target)
	return &q, nil
}

func (s *quizService) CheckFillBlank(ctx context.Context, ownerID, vocabularyID uuid.UUID, answer string) (*model.CheckFillBlankResponse, error) {
	vocab, err := s.vocabRepo.FindByID(ctx, s.db, ownerID, vocabularyID)
	if err != nil {
		return nil, vocabularyLookupError(ctx, err)
	}
	return &model.CheckFillBlankResponse{
		Correct: quiz.CheckAnswer(vocab.English, answer),
		English: vocab.English,
	}, nil
}
