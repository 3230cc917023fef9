package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"go_vocab_quiz/internal/lookup"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	maxImportRows   = 5000
	importColumnMin = 2

	importLookupConcurrency = 8
	importLookupBudget      = 20 * time.Second
)

var exportHeader = []interface{}{"English", "Vietnamese", "Word Type", "Pronunciation", "Studied", "Memorized", "Review Count"}

// TransferService はxlsxで単語帳を書き出し・取り込みします
type TransferService interface {
	Export(ctx context.Context, ownerID uuid.UUID, w io.Writer) error
	Import(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*model.ImportResult, error)
}

type transferService struct {
	db        *gorm.DB
	vocabRepo repository.VocabularyRepository
	lookup    PronunciationLookup
	now       func() time.Time
}

func NewTransferService(db *gorm.DB, vocabRepo repository.VocabularyRepository, lookup PronunciationLookup) TransferService {
	return &transferService{db: db, vocabRepo: vocabRepo, lookup: lookup, now: time.Now}
}

func (s *transferService) Export(ctx context.Context, ownerID uuid.UUID, w io.Writer) error {
	logger := middleware.GetLogger(ctx)

	vocabs, err := s.vocabRepo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		logger.Error("Error loading vocabularies for export", "error", err)
		return model.ErrInternalServer
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("transferService.Export: %w", err)
	}
	for i, v := range vocabs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("transferService.Export: %w", err)
		}
		row := []interface{}{v.English, v.Vietnamese, string(v.WordType), v.Pronunciation, v.Studied, v.Memorized, v.ReviewCount}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("transferService.Export: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		logger.Error("Error writing xlsx", "error", err)
		return model.ErrInternalServer
	}
	logger.Info("Vocabularies exported", "count", len(vocabs))
	return nil
}

// Import は先頭シートの2行目以降を english, vietnamese, wordType, pronunciation として読み込みます。
// 不正な行はスキップして結果に記録します。
func (s *transferService) Import(ctx context.Context, ownerID uuid.UUID, r io.Reader) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx)

	f, err := excelize.OpenReader(r)
	if err != nil {
		logger.Warn("Invalid xlsx upload", "error", err)
		return nil, model.NewAppError("INVALID_FILE", "File must be a valid xlsx workbook", "file", model.ErrInvalidInput)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		logger.Warn("Error reading xlsx rows", "error", err)
		return nil, model.NewAppError("INVALID_FILE", "File must be a valid xlsx workbook", "file", model.ErrInvalidInput)
	}
	if len(rows) > maxImportRows+1 {
		return nil, model.NewAppError("VALIDATION_ERROR", fmt.Sprintf("File must contain at most %d rows", maxImportRows), "file", model.ErrInvalidInput)
	}

	result := &model.ImportResult{Skipped: []model.ImportRow{}}
	vocabs := make([]*model.Vocabulary, 0, len(rows))
	for i, row := range rows {
		// ヘッダー行
		if i == 0 {
			continue
		}
		vocab, reason := s.parseRow(ownerID, row)
		if reason != "" {
			result.Skipped = append(result.Skipped, model.ImportRow{Row: i + 1, Reason: reason})
			continue
		}
		vocabs = append(vocabs, vocab)
	}

	s.fillPronunciations(ctx, vocabs)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, v := range vocabs {
			if err := s.vocabRepo.Create(ctx, tx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Error importing vocabularies", "error", err)
		return nil, model.ErrInternalServer
	}

	result.Imported = len(vocabs)
	logger.Info("Vocabularies imported", "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

// fillPronunciations は発音記号が空の行を並列に補完します。
// 外部辞書に使う時間は lookupBudget までで、超えた分は規則ベースで生成します。
func (s *transferService) fillPronunciations(ctx context.Context, vocabs []*model.Vocabulary) {
	lookupCtx, cancel := context.WithTimeout(ctx, lookupBudget(ctx))
	defer cancel()

	g := new(errgroup.Group)
	g.SetLimit(importLookupConcurrency)
	for _, v := range vocabs {
		if v.Pronunciation != "" {
			continue
		}
		v := v
		g.Go(func() error {
			if s.lookup == nil || lookupCtx.Err() != nil {
				v.Pronunciation = lookup.GeneratePronunciation(v.English)
				return nil
			}
			p := lookup.ClampPronunciation(s.lookup.Pronunciation(lookupCtx, v.English))
			if p == "" {
				p = lookup.GeneratePronunciation(v.English)
			}
			v.Pronunciation = p
			return nil
		})
	}
	_ = g.Wait()
}

// lookupBudget は補完に使える時間です。期限付きの ctx なら残り時間の半分を保存用に残します
func lookupBudget(ctx context.Context) time.Duration {
	budget := importLookupBudget
	if deadline, ok := ctx.Deadline(); ok {
		budget = min(budget, time.Until(deadline)/2)
	}
	return budget
}

func (s *transferService) parseRow(ownerID uuid.UUID, row []string) (*model.Vocabulary, string) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	if len(row) < importColumnMin {
		return nil, "english and vietnamese are required"
	}

	english := normalizeEnglish(cell(0))
	vietnamese := cell(1)
	if english == "" || vietnamese == "" {
		return nil, "english and vietnamese are required"
	}
	pronunciation := cell(3)
	if len(english) > 200 || len(vietnamese) > 500 || utf8.RuneCountInString(pronunciation) > model.MaxPronunciationLength {
		return nil, "value too long"
	}
	wordType := cell(2)
	if wordType != "" && !model.IsValidWordType(strings.ToLower(wordType)) {
		return nil, fmt.Sprintf("unknown word type %q", wordType)
	}

	return &model.Vocabulary{
		ID:            uuid.New(),
		OwnerID:       &ownerID,
		English:       english,
		Vietnamese:    vietnamese,
		WordType:      model.ParseWordType(strings.ToLower(wordType)),
		Pronunciation: pronunciation,
		CreatedAt:     s.now(),
	}, ""
}
