package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/handlers"
	"go_vocab_quiz/internal/lookup"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/quiz"
	"go_vocab_quiz/internal/repository"
	"go_vocab_quiz/internal/service"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Cfg
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	logger.Info("Application starting...", slog.String("app", config.AppName))

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		} else {
			logger.Info("Database connection closed.")
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(sqlDB, logger); err != nil {
			return err
		}
	}

	// Redis は任意。未設定や接続失敗ならキャッシュなしで動く
	cache := lookup.NewNoopCache()
	if cfg.Redis.Addr != "" {
		redisCache, closeRedis, err := lookup.NewRedisCache(cmd.Context(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, lookup cache disabled", slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
		} else {
			cache = redisCache
			defer closeRedis()
			logger.Info("Lookup cache enabled", slog.String("addr", cfg.Redis.Addr))
		}
	}

	lookupService := lookup.NewService(lookup.Config{
		DictionaryURL: cfg.Lookup.DictionaryURL,
		TranslateURL:  cfg.Lookup.TranslateURL,
		Timeout:       cfg.Lookup.Timeout,
		CacheTTL:      cfg.Lookup.CacheTTL,
	}, &http.Client{Timeout: cfg.Lookup.Timeout}, cache)

	vocabRepo := repository.NewGormVocabularyRepository()
	userRepo := repository.NewGormUserRepository()

	generator := quiz.NewGenerator(quiz.Config{
		TopWindow:      cfg.Quiz.TopWindow,
		SinglePoolSize: cfg.Quiz.SinglePoolSize,
		ListPoolSize:   cfg.Quiz.ListPoolSize,
	}, nil)

	authService := service.NewAuthService(db, userRepo, service.AuthConfig{
		SecretKey:      cfg.JWT.SecretKey,
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
	})
	vocabService := service.NewVocabularyService(db, vocabRepo, lookupService)
	learningService := service.NewLearningService(db, vocabRepo)
	quizService := service.NewQuizService(db, vocabRepo, generator)
	transferService := service.NewTransferService(db, vocabRepo, lookupService)

	var authenticator middleware.TokenAuthenticator
	if cfg.Auth.Enabled {
		authenticator = authService
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:        logger,
		Authenticator: authenticator,
		CORS: cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   cfg.CORS.ExposedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		},
		Auth:       handlers.NewAuthHandler(authService),
		Vocabulary: handlers.NewVocabularyHandler(vocabService, learningService, cfg.Quiz.DefaultPageLimit),
		Quiz:       handlers.NewQuizHandler(quizService, cfg.Quiz.ReviewLimit, cfg.Quiz.ListLimit),
		Lookup:     handlers.NewLookupHandler(lookupService),
		Transfer:   handlers.NewTransferHandler(transferService),
		DB:         sqlDB,
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		logger.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		return err
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
		return err
	}
	logger.Info("Server exiting")
	return nil
}
