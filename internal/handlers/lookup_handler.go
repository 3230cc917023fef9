package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"go_vocab_quiz/internal/lookup"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/webutil"

	"github.com/go-chi/chi/v5"
)

const maxLookupWordLength = 100

// LookupHandler は辞書・翻訳の検索を中継します。外部APIが失敗しても200で代替結果を返します
type LookupHandler struct {
	service lookup.Service
}

func NewLookupHandler(s lookup.Service) *LookupHandler {
	return &LookupHandler{service: s}
}

func wordParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "word")
	word, err := url.PathUnescape(raw)
	if err != nil {
		word = raw
	}
	word = strings.TrimSpace(word)
	if word == "" || len(word) > maxLookupWordLength {
		return "", model.NewAppError("INVALID_URL_PARAM", "word must be 1-100 characters", "word", model.ErrInvalidInput)
	}
	return word, nil
}

// WordInfo は GET /vocabulary/word-info/{word}
func (h *LookupHandler) WordInfo(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	word, err := wordParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, h.service.WordInfo(r.Context(), word), logger)
}

// Translate は GET /vocabulary/translate/{word}
func (h *LookupHandler) Translate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	word, err := wordParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, h.service.Translate(r.Context(), word), logger)
}
