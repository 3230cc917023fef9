package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook は rows を先頭シートに書いたxlsxを返します
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := &bytes.Buffer{}
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func Test_transferService_Export(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("正常系: ヘッダーと単語を書き出す", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindByOwner", ctx, mock.Anything, ownerID).Return([]*model.Vocabulary{
			{English: "cat", Vietnamese: "con mèo", WordType: model.WordTypeNoun, Pronunciation: "/kæt/", Studied: true, ReviewCount: 2},
			{English: "run", Vietnamese: "chạy", WordType: model.WordTypeVerb},
		}, nil).Once()
		svc := NewTransferService(setupTestDB(), repo, nil)

		buf := &bytes.Buffer{}
		require.NoError(t, svc.Export(ctx, ownerID, buf))

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "English", rows[0][0])
		assert.Equal(t, []string{"cat", "con mèo", "noun", "/kæt/", "TRUE", "FALSE", "2"}, rows[1])
		assert.Equal(t, "run", rows[2][0])
	})

	t.Run("異常系: DBエラー", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("FindByOwner", ctx, mock.Anything, ownerID).Return(nil, errors.New("boom")).Once()
		svc := NewTransferService(setupTestDB(), repo, nil)

		assert.ErrorIs(t, svc.Export(ctx, ownerID, &bytes.Buffer{}), model.ErrInternalServer)
	})
}

func Test_transferService_Import(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("正常系: 不正な行はスキップして残りを取り込む", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		lookup := &stubLookup{}
		var created []*model.Vocabulary
		repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Vocabulary")).
			Run(func(args mock.Arguments) {
				created = append(created, args.Get(2).(*model.Vocabulary))
			}).Return(nil).Times(2)
		svc := NewTransferService(setupTestDB(), repo, lookup)

		file := buildWorkbook(t, [][]interface{}{
			{"English", "Vietnamese", "Word Type", "Pronunciation"},
			{" Cat ", "con mèo", "Noun", "/kæt/"},
			{"", "trống"},
			{"dog", "con chó"},
			{"fly", "bay", "spaceship"},
		})

		got, err := svc.Import(ctx, ownerID, file)

		require.NoError(t, err)
		assert.Equal(t, 2, got.Imported)
		require.Len(t, got.Skipped, 2)
		assert.Equal(t, 3, got.Skipped[0].Row)
		assert.Equal(t, 5, got.Skipped[1].Row)
		assert.True(t, strings.Contains(got.Skipped[1].Reason, "spaceship"))

		require.Len(t, created, 2)
		assert.Equal(t, "cat", created[0].English)
		assert.Equal(t, model.WordTypeNoun, created[0].WordType)
		assert.Equal(t, "/kæt/", created[0].Pronunciation)
		assert.Equal(t, ownerID, *created[1].OwnerID)
		assert.Equal(t, "/dog/", created[1].Pronunciation)
		assert.Equal(t, []string{"dog"}, lookup.calls)
	})

	t.Run("正常系: 辞書が遅くても期限内に保存できる", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		lookup := &stubLookup{delay: 20 * time.Millisecond}
		var created []*model.Vocabulary
		repo.On("Create", mock.Anything, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Vocabulary")).
			Run(func(args mock.Arguments) {
				created = append(created, args.Get(2).(*model.Vocabulary))
			}).Return(nil).Times(40)
		svc := NewTransferService(setupTestDB(), repo, lookup)

		rows := [][]interface{}{{"English", "Vietnamese"}}
		for i := 0; i < 40; i++ {
			rows = append(rows, []interface{}{fmt.Sprintf("word%02d", i), fmt.Sprintf("từ %d", i)})
		}
		reqCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()

		got, err := svc.Import(reqCtx, ownerID, buildWorkbook(t, rows))

		require.NoError(t, err)
		assert.Equal(t, 40, got.Imported)
		require.Len(t, created, 40)
		for _, v := range created {
			assert.NotEmpty(t, v.Pronunciation, v.English)
		}
	})

	t.Run("異常系: 長すぎる発音記号の行はスキップ", func(t *testing.T) {
		repo := mocks.NewVocabularyRepository(t)
		repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Vocabulary")).Return(nil).Once()
		svc := NewTransferService(setupTestDB(), repo, &stubLookup{})

		file := buildWorkbook(t, [][]interface{}{
			{"English", "Vietnamese", "Word Type", "Pronunciation"},
			{"cat", "con mèo", "noun", "/" + strings.Repeat("ə", model.MaxPronunciationLength) + "/"},
			{"dog", "con chó"},
		})

		got, err := svc.Import(ctx, ownerID, file)

		require.NoError(t, err)
		assert.Equal(t, 1, got.Imported)
		require.Len(t, got.Skipped, 1)
		assert.Equal(t, model.ImportRow{Row: 2, Reason: "value too long"}, got.Skipped[0])
	})

	t.Run("異常系: xlsxではないファイル", func(t *testing.T) {
		svc := NewTransferService(setupTestDB(), mocks.NewVocabularyRepository(t), nil)

		_, err := svc.Import(ctx, ownerID, strings.NewReader("english,vietnamese\ncat,con mèo\n"))
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
