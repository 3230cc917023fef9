package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"go_vocab_quiz/internal/handlers"
	"go_vocab_quiz/internal/lookup"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/quiz"
	"go_vocab_quiz/internal/repository"
	"go_vocab_quiz/internal/service"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/rs/cors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubLookup は外部APIを呼ばずに決まった結果を返します
type stubLookup struct{}

func (stubLookup) Pronunciation(_ context.Context, word string) string {
	return lookup.GeneratePronunciation(word)
}

func (stubLookup) WordInfo(_ context.Context, word string) model.WordInfo {
	return model.WordInfo{
		Pronunciation: "/" + word + "/",
		Definitions:   []model.Definition{{PartOfSpeech: "noun", Definition: "a test definition"}},
	}
}

func (stubLookup) Translate(_ context.Context, word string) model.Translation {
	return lookup.BasicTranslation(word)
}

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

type envOptions struct {
	jwtAuth bool
}

// newTestEnv はインメモリSQLite上に本番と同じルーターを組み立てます
func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         slogGorm.New(slogGorm.WithHandler(logger.Handler())),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: は接続ごとに別DBになる
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	vocabRepo := repository.NewGormVocabularyRepository()
	userRepo := repository.NewGormUserRepository()
	lookupSvc := stubLookup{}

	authService := service.NewAuthService(db, userRepo, service.AuthConfig{SecretKey: "test-secret", AccessTokenTTL: time.Hour})
	generator := quiz.NewGenerator(quiz.DefaultConfig(), quiz.NewShuffler(7))

	cfg := handlers.RouterConfig{
		Logger:     logger,
		CORS:       cors.Options{AllowedOrigins: []string{"*"}},
		Auth:       handlers.NewAuthHandler(authService),
		Vocabulary: handlers.NewVocabularyHandler(service.NewVocabularyService(db, vocabRepo, lookupSvc), service.NewLearningService(db, vocabRepo), 20),
		Quiz:       handlers.NewQuizHandler(service.NewQuizService(db, vocabRepo, generator), 8, 10),
		Lookup:     handlers.NewLookupHandler(lookupSvc),
		Transfer:   handlers.NewTransferHandler(service.NewTransferService(db, vocabRepo, lookupSvc)),
		DB:         sqlDB,
	}
	if opts.jwtAuth {
		cfg.Authenticator = authService
	}

	server := httptest.NewServer(handlers.NewRouter(cfg))
	t.Cleanup(server.Close)
	return &testEnv{server: server, db: db}
}
