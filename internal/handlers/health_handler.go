package handlers

import (
	"context"
	"net/http"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/webutil"
)

// Pinger は *sql.DB を想定しています
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health は DB に ping して生存確認します
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", "error", err)
			webutil.RespondWithJSON(w, http.StatusServiceUnavailable, model.APIErrorResponse{
				Message: "Database unavailable",
				Error:   model.ErrorDetail{Code: "SERVICE_UNAVAILABLE", Message: "Database unavailable"},
			}, logger)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
