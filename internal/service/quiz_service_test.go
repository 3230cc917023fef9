package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/quiz"
	"go_vocab_quiz/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// activeVocabularies は未暗記の単語を n 件作ります。偶数番目は学習済み
func activeVocabularies(n int) []*model.Vocabulary {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*model.Vocabulary, n)
	for i := range out {
		v := &model.Vocabulary{
			ID:         uuid.New(),
			English:    fmt.Sprintf("word%d", i),
			Vietnamese: fmt.Sprintf("từ %d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if i%2 == 0 {
			studied := base.Add(time.Duration(i) * time.Minute)
			v.Studied = true
			v.LastStudied = &studied
		}
		out[i] = v
	}
	return out
}

func newTestQuizService(repo *mocks.VocabularyRepository) QuizService {
	return NewQuizService(setupTestDB(), repo, quiz.NewGenerator(quiz.DefaultConfig(), quiz.NewShuffler(42)))
}

func Test_quizService_ReviewBatch(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("正常系: 未学習グループが先頭でページ情報を付与", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(activeVocabularies(10), nil).Once()

		got, err := newTestQuizService(repo).ReviewBatch(ctx, ownerID, 1, 4)

		require.NoError(t, err)
		require.Len(t, got.Vocabularies, 4)
		for _, v := range got.Vocabularies {
			assert.False(t, v.Studied)
		}
		assert.Equal(t, model.Pagination{Current: 1, Total: 3, Count: 4, TotalItems: 10, HasNext: true, HasPrev: false}, got.Pagination)
	})

	t.Run("正常系: 範囲外のページは空", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(activeVocabularies(3), nil).Once()

		got, err := newTestQuizService(repo).ReviewBatch(ctx, ownerID, 5, 8)

		require.NoError(t, err)
		assert.Empty(t, got.Vocabularies)
		assert.Equal(t, 3, got.Pagination.TotalItems)
		assert.False(t, got.Pagination.HasNext)
	})

	t.Run("異常系: 出題できる単語がない", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return([]*model.Vocabulary{}, nil).Once()

		_, err := newTestQuizService(repo).ReviewBatch(ctx, ownerID, 1, 8)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NO_CONTENT_AVAILABLE", appErr.Detail.Code)
		assert.ErrorIs(t, err, model.ErrNoContent)
	})

	t.Run("異常系: DBエラー", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(nil, errors.New("boom")).Once()

		_, err := newTestQuizService(repo).ReviewBatch(ctx, ownerID, 1, 8)
		assert.ErrorIs(t, err, model.ErrInternalServer)
	})
}

func Test_quizService_MultipleChoice(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("正常系: 十分な単語があれば補充なしで4択", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		entries := activeVocabularies(8)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(entries, nil).Once()

		q, err := newTestQuizService(repo).MultipleChoice(ctx, ownerID)

		require.NoError(t, err)
		require.Len(t, q.Answers, quiz.AnswerCount)
		assert.ElementsMatch(t, q.Answers, uniqueStrings(q.Answers))
		target := findByID(entries, q.VocabularyID)
		require.NotNil(t, target)
		assert.False(t, target.Studied, "未学習グループから出題")
		assert.Equal(t, target.Vietnamese, q.Answers[q.CorrectAnswerIndex])
		repo.AssertNotCalled(t, "FindFallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: 単語が2件なら暗記済みから補充し、それでも足りなければプレースホルダ", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		entries := activeVocabularies(2)
		memorized := &model.Vocabulary{ID: uuid.New(), English: "old", Vietnamese: "cũ", Memorized: true}
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(entries, nil).Once()
		repo.On("FindFallback", ctx, mock.Anything, ownerID, mock.AnythingOfType("[]uuid.UUID"), quiz.DefaultSinglePoolSize).
			Return([]*model.Vocabulary{memorized}, nil).Once()

		q, err := newTestQuizService(repo).MultipleChoice(ctx, ownerID)

		require.NoError(t, err)
		require.Len(t, q.Answers, quiz.AnswerCount)
		assert.Contains(t, q.Answers, "cũ")
		assert.Contains(t, q.Answers, quiz.PlaceholderAnswer)
		target := findByID(entries, q.VocabularyID)
		require.NotNil(t, target)
		assert.Equal(t, target.Vietnamese, q.Answers[q.CorrectAnswerIndex])
	})

	t.Run("正常系: 補充の検索に失敗してもプレースホルダで埋める", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		entries := activeVocabularies(1)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(entries, nil).Once()
		repo.On("FindFallback", ctx, mock.Anything, ownerID, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		q, err := newTestQuizService(repo).MultipleChoice(ctx, ownerID)

		require.NoError(t, err)
		placeholders := 0
		for _, a := range q.Answers {
			if a == quiz.PlaceholderAnswer {
				placeholders++
			}
		}
		assert.Equal(t, quiz.DistractorCount, placeholders)
		assert.Equal(t, entries[0].Vietnamese, q.Answers[q.CorrectAnswerIndex])
	})

	t.Run("異常系: 全て暗記済み", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(nil, nil).Once()

		_, err := newTestQuizService(repo).MultipleChoice(ctx, ownerID)
		assert.ErrorIs(t, err, model.ErrNoContent)
	})
}

func Test_quizService_MultipleChoiceList(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("正常系: 指定数の問題を重複なしで生成", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		entries := activeVocabularies(12)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(entries, nil).Once()

		got, err := newTestQuizService(repo).MultipleChoiceList(ctx, ownerID, 10)

		require.NoError(t, err)
		require.Len(t, got.Questions, 10)
		seen := map[uuid.UUID]bool{}
		for _, q := range got.Questions {
			assert.False(t, seen[q.VocabularyID])
			seen[q.VocabularyID] = true
			assert.Len(t, q.Answers, quiz.AnswerCount)
			assert.Equal(t, findByID(entries, q.VocabularyID).Vietnamese, q.Answers[q.CorrectAnswerIndex])
		}
		assert.Equal(t, 12, got.Pagination.TotalItems)
		assert.Equal(t, 10, got.Pagination.Count)
	})

	t.Run("正常系: 単語数が limit より少なければ全件", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(activeVocabularies(5), nil).Once()

		got, err := newTestQuizService(repo).MultipleChoiceList(ctx, ownerID, 10)

		require.NoError(t, err)
		assert.Len(t, got.Questions, 5)
	})

	t.Run("異常系: 全て暗記済み", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return([]*model.Vocabulary{}, nil).Once()

		_, err := newTestQuizService(repo).MultipleChoiceList(ctx, ownerID, 10)
		assert.ErrorIs(t, err, model.ErrNoContent)
	})
}

func Test_quizService_FillBlank(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("正常系: ヒントは先頭2文字", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		entries := []*model.Vocabulary{{ID: uuid.New(), English: "apple", Vietnamese: "quả táo"}}
		repo.On("FindActive", ctx, mock.Anything, ownerID).Return(entries, nil).Once()

		q, err := newTestQuizService(repo).FillBlank(ctx, ownerID)

		require.NoError(t, err)
		assert.Equal(t, "Ap", q.Hint)
		assert.Equal(t, "quả táo", q.Vietnamese)
	})

	t.Run("正常系: 答え合わせは大文字小文字と前後の空白を無視", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		id := uuid.New()
		repo.On("FindByID", ctx, mock.Anything, ownerID, id).Return(&model.Vocabulary{ID: id, English: "apple"}, nil).Twice()
		svc := newTestQuizService(repo)

		got, err := svc.CheckFillBlank(ctx, ownerID, id, "  APPLE ")
		require.NoError(t, err)
		assert.True(t, got.Correct)

		got, err = svc.CheckFillBlank(ctx, ownerID, id, "aple")
		require.NoError(t, err)
		assert.False(t, got.Correct)
		assert.Equal(t, "apple", got.English)
	})

	t.Run("異常系: 答え合わせ対象が存在しない", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		id := uuid.New()
		repo.On("FindByID", ctx, mock.Anything, ownerID, id).Return(nil, model.ErrNotFound).Once()

		_, err := newTestQuizService(repo).CheckFillBlank(ctx, ownerID, id, "apple")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func findByID(entries []*model.Vocabulary, id uuid.UUID) *model.Vocabulary {
	for _, v := range entries {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
