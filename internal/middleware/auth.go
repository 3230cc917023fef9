package middleware

import (
	"context"
	"net/http"
	"strings"

	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/webutil"

	"github.com/google/uuid"
)

type userIDCtxKey struct{}

// TokenAuthenticator は Bearer トークンを検証し、存在するユーザーのIDを返します
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア
func JWTAuthMiddleware(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Access denied. No token provided.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Fields(authHeader)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Invalid Authorization header format.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			userID, err := auth.Authenticate(r.Context(), headerParts[1])
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "Invalid token.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// 以降のログにユーザーIDを含める
			ctx := WithUserID(r.Context(), userID)
			ctx = context.WithValue(ctx, logCtxKey{}, logger.With("user_id", userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID はコンテキストにユーザーIDをセットします
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(userIDCtxKey{}).(uuid.UUID)
	if !ok {
		// ミドルウェアを通っていない
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "Access denied. No authenticated user.", "", model.ErrUnauthorized)
	}
	return value, nil
}
