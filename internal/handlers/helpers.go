package handlers

import (
	"net/http"
	"strconv"

	"go_vocab_quiz/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxPageLimit は1ページで返す件数の上限です
const maxPageLimit = 100

// pathUUID はURLパラメータをUUIDとして取り出します
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", "Invalid "+name+" format", name, model.ErrInvalidInput)
	}
	return id, nil
}

// queryPositive は正の整数のクエリを読みます。未指定なら def
func queryPositive(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, model.NewAppError("INVALID_QUERY_PARAM", name+" must be a positive integer", name, model.ErrInvalidInput)
	}
	return n, nil
}

// queryPage は1始まりのページ番号を読みます
func queryPage(r *http.Request) (int, error) {
	return queryPositive(r, "page", 1)
}

// queryLimit は件数を読みます。上限は maxPageLimit
func queryLimit(r *http.Request, def int) (int, error) {
	n, err := queryPositive(r, "limit", def)
	if err != nil {
		return 0, err
	}
	return min(n, maxPageLimit), nil
}

// queryMemorized は memorized クエリを読みます。未指定と "all" は絞り込みなし
func queryMemorized(r *http.Request) (*bool, error) {
	raw := r.URL.Query().Get("memorized")
	if raw == "" || raw == "all" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, model.NewAppError("INVALID_QUERY_PARAM", "memorized must be true, false or all", "memorized", model.ErrInvalidInput)
	}
	return &b, nil
}

// vocabularyResponse は単語1件を返すレスポンスです
type vocabularyResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Vocabulary *model.Vocabulary `json:"vocabulary"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
