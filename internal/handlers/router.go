package handlers

import (
	"log/slog"
	"time"

	"go_vocab_quiz/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterConfig はルーターの組み立てに必要な依存です
type RouterConfig struct {
	Logger *slog.Logger
	// Authenticator が nil なら X-User-ID ヘッダーによる開発用認証を使います
	Authenticator middleware.TokenAuthenticator
	CORS          cors.Options

	Auth       *AuthHandler
	Vocabulary *VocabularyHandler
	Quiz       *QuizHandler
	Lookup     *LookupHandler
	Transfer   *TransferHandler
	DB         Pinger
}

// NewRouter は /api 以下のルーティングを組み立てます
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(cfg.Logger))
	r.Use(cors.New(cfg.CORS).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	authMiddleware := middleware.DevUserContextMiddleware
	if cfg.Authenticator != nil {
		authMiddleware = middleware.JWTAuthMiddleware(cfg.Authenticator)
	} else {
		cfg.Logger.Warn("Authentication disabled: using X-User-ID header")
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.Auth != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", cfg.Auth.Register)
				r.Post("/login", cfg.Auth.Login)
				r.With(authMiddleware).Get("/me", cfg.Auth.GetMe)
			})
		}

		r.Route("/vocabulary", func(r chi.Router) {
			// 辞書検索は認証不要
			r.Get("/word-info/{word}", cfg.Lookup.WordInfo)
			r.Get("/translate/{word}", cfg.Lookup.Translate)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)

				// 固定パスは /{id} より先に登録する
				r.Post("/add", cfg.Vocabulary.Add)
				r.Get("/all", cfg.Vocabulary.List)
				r.Post("/migrate", cfg.Vocabulary.Migrate)
				r.Get("/export", cfg.Transfer.Export)
				r.Post("/import", cfg.Transfer.Import)

				r.Get("/review", cfg.Quiz.Review)
				r.Get("/multiple-choice", cfg.Quiz.MultipleChoice)
				r.Get("/multiple-choice/list", cfg.Quiz.MultipleChoiceList)
				r.Get("/fill-blank", cfg.Quiz.FillBlank)
				r.Post("/fill-blank/check", cfg.Quiz.CheckFillBlank)

				r.Put("/review/{id}", cfg.Vocabulary.MarkReviewed)
				r.Put("/memorized/{id}", cfg.Vocabulary.SetMemorized)
				r.Put("/studied/{id}", cfg.Vocabulary.SetStudied)

				r.Get("/{id}", cfg.Vocabulary.Get)
				r.Put("/{id}", cfg.Vocabulary.Update)
				r.Delete("/{id}", cfg.Vocabulary.Delete)
			})
		})
	})

	if cfg.DB != nil {
		r.Get("/health", Health(cfg.DB))
	}
	return r
}
