package handlers

import (
	"fmt"
	"net/http"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"
)

type vocabularyListResponse struct {
	Success bool `json:"success"`
	*service.VocabularyList
}

// VocabularyHandler は単語帳のCRUDと学習状態の更新を扱います
type VocabularyHandler struct {
	vocabService    service.VocabularyService
	learningService service.LearningService
	pageLimit       int
}

func NewVocabularyHandler(vs service.VocabularyService, ls service.LearningService, pageLimit int) *VocabularyHandler {
	return &VocabularyHandler{vocabService: vs, learningService: ls, pageLimit: pageLimit}
}

// Add は POST /vocabulary/add
func (h *VocabularyHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.AddVocabularyRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid add vocabulary request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	vocab, err := h.vocabService.Add(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, vocabularyResponse{
		Success:    true,
		Message:    "Vocabulary added successfully",
		Vocabulary: vocab,
	}, logger)
}

// List は GET /vocabulary/all
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	page, err := queryPage(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	limit, err := queryLimit(r, h.pageLimit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	memorized, err := queryMemorized(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	q := r.URL.Query()
	list, err := h.vocabService.List(r.Context(), userID, service.ListVocabularyParams{
		Search:    q.Get("search"),
		WordType:  q.Get("wordType"),
		Memorized: memorized,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, vocabularyListResponse{Success: true, VocabularyList: list}, logger)
}

// Get は GET /vocabulary/{id}
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	vocab, err := h.vocabService.Get(r.Context(), userID, id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabularyResponse{Success: true, Vocabulary: vocab}, logger)
}

// Update は PUT /vocabulary/{id}
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateVocabularyRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid update vocabulary request", "error", err, "vocabulary_id", id.String())
		webutil.HandleError(w, logger, err)
		return
	}

	vocab, err := h.vocabService.Update(r.Context(), userID, id, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabularyResponse{
		Success:    true,
		Message:    "Vocabulary updated successfully",
		Vocabulary: vocab,
	}, logger)
}

// Delete は DELETE /vocabulary/{id}
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.vocabService.Delete(r.Context(), userID, id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Vocabulary deleted successfully"}, logger)
}

// MarkReviewed は PUT /vocabulary/review/{id}
func (h *VocabularyHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	vocab, err := h.learningService.MarkReviewed(r.Context(), userID, id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabularyResponse{Success: true, Message: "Review updated", Vocabulary: vocab}, logger)
}

// SetMemorized は PUT /vocabulary/memorized/{id}
func (h *VocabularyHandler) SetMemorized(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SetMemorizedRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	vocab, err := h.learningService.SetMemorized(r.Context(), userID, id, *req.Memorized)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	state := "memorized"
	if !*req.Memorized {
		state = "not memorized"
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabularyResponse{
		Success:    true,
		Message:    fmt.Sprintf("Vocabulary marked as %s", state),
		Vocabulary: vocab,
	}, logger)
}

// SetStudied は PUT /vocabulary/studied/{id}
func (h *VocabularyHandler) SetStudied(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SetStudiedRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	vocab, err := h.learningService.SetStudied(r.Context(), userID, id, *req.Studied)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	state := "studied"
	if !*req.Studied {
		state = "not studied"
	}
	webutil.RespondWithJSON(w, http.StatusOK, vocabularyResponse{
		Success:    true,
		Message:    fmt.Sprintf("Vocabulary marked as %s", state),
		Vocabulary: vocab,
	}, logger)
}

// Migrate は POST /vocabulary/migrate
// 所有者のいない旧データをログイン中のユーザーに引き継ぎます。
func (h *VocabularyHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	n, err := h.vocabService.MigrateLegacy(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       fmt.Sprintf("Migrated %d vocabularies", n),
		"migratedCount": n,
	}, logger)
}
