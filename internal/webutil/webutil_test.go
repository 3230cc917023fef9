package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_quiz/internal/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrNoContent, http.StatusNotFound},
		{model.ErrInvalidInput, http.StatusBadRequest},
		{model.ErrUnauthorized, http.StatusUnauthorized},
		{model.ErrConflict, http.StatusConflict},
		{model.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", model.ErrNotFound), http.StatusNotFound},
		{model.NewAppError("X", "x", "", model.ErrInvalidInput), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError_HidesUnexpectedDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleError(rr, discardLogger, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", resp.Error.Code)
}

func TestHandleError_AppError(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleError(rr, discardLogger, model.NewAppError("NO_CONTENT_AVAILABLE", "No vocabulary available", "", model.ErrNoContent))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "NO_CONTENT_AVAILABLE", resp.Error.Code)
	assert.Equal(t, "No vocabulary available", resp.Message)
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantField string
	}{
		{name: "正常系", body: `{"english":"cat","vietnamese":"con mèo","wordType":"noun"}`},
		{name: "異常系: 空白のみ", body: `{"english":"  ","vietnamese":"con mèo"}`, wantErr: true, wantField: "english"},
		{name: "異常系: 品詞が不正", body: `{"english":"cat","vietnamese":"con mèo","wordType":"thing"}`, wantErr: true, wantField: "wordType"},
		{name: "異常系: 未知のフィールド", body: `{"english":"cat","vietnamese":"con mèo","extra":1}`, wantErr: true},
		{name: "異常系: 空ボディ", body: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst model.AddVocabularyRequest
			err := DecodeAndValidate(req, &dst)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, appErr.Detail.Field)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := Validator.Struct(model.RegisterRequest{Username: "ab", Password: "123456"})
	require.Error(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"ab","password":"123456"}`))
	var dst model.RegisterRequest
	err = DecodeAndValidate(req, &dst)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Username must be at least 3 characters", appErr.Detail.Message)
}
