package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	userID uuid.UUID
	err    error
	got    string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (uuid.UUID, error) {
	s.got = token
	return s.userID, s.err
}

func echoUserHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(userID.String()))
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		authErr    error
		wantStatus int
		wantToken  string
	}{
		{name: "正常系: 有効なトークン", header: "Bearer good-token", wantStatus: http.StatusOK, wantToken: "good-token"},
		{name: "正常系: bearer は大文字小文字を区別しない", header: "bearer good-token", wantStatus: http.StatusOK, wantToken: "good-token"},
		{name: "異常系: ヘッダーなし", header: "", wantStatus: http.StatusUnauthorized},
		{name: "異常系: 形式不正", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "異常系: 検証失敗", header: "Bearer bad", authErr: errors.New("expired"), wantStatus: http.StatusUnauthorized, wantToken: "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuthenticator{userID: userID, err: tt.authErr}
			handler := JWTAuthMiddleware(auth)(echoUserHandler(t))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantToken, auth.got)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), rr.Body.String())
			} else {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
			}
		})
	}
}

func TestDevUserContextMiddleware(t *testing.T) {
	userID := uuid.New()
	handler := DevUserContextMiddleware(echoUserHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", userID.String())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, userID.String(), rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "not-a-uuid")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, err := GetUserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Error(t, err)
}

func TestLoggingMiddleware_MasksSensitiveData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotSame(t, slog.Default(), GetLogger(r.Context()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"secret-jwt","success":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"alice","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer abc")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	out := buf.String()
	assert.Contains(t, out, "Request completed")
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "secret-jwt")
	assert.NotContains(t, out, "Bearer abc")
}

func TestLoggingMiddleware_InfoLevelSkipsBodies(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("PK-binary"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/vocabulary/export", nil))

	assert.Equal(t, "PK-binary", rr.Body.String())
	out := buf.String()
	assert.Contains(t, out, `"bytes_out":9`)
	assert.NotContains(t, out, "Response detail")
}

func TestMaskBody(t *testing.T) {
	assert.Equal(t, "", maskBody(nil))
	assert.Equal(t, "not json", maskBody([]byte("not json")))
	assert.JSONEq(t, `{"password":"[SENSITIVE]","username":"bob"}`, maskBody([]byte(`{"password":"x","username":"bob"}`)))
}
