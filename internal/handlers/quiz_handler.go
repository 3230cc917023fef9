package handlers

import (
	"net/http"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"

	"github.com/google/uuid"
)

// QuizHandler は復習カードと出題のエンドポイントです
type QuizHandler struct {
	service     service.QuizService
	reviewLimit int
	listLimit   int
}

func NewQuizHandler(s service.QuizService, reviewLimit, listLimit int) *QuizHandler {
	return &QuizHandler{service: s, reviewLimit: reviewLimit, listLimit: listLimit}
}

// Review は GET /vocabulary/review
func (h *QuizHandler) Review(w http.ResponseWriter, r *http.Request) {
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
	limit, err := queryLimit(r, h.reviewLimit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	batch, err := h.service.ReviewBatch(r.Context(), userID, page, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*service.ReviewBatch
	}{true, batch}, logger)
}

// MultipleChoice は GET /vocabulary/multiple-choice
func (h *QuizHandler) MultipleChoice(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	q, err := h.service.MultipleChoice(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct {
		Success  bool                          `json:"success"`
		Question *model.MultipleChoiceQuestion `json:"question"`
	}{true, q}, logger)
}

// MultipleChoiceList は GET /vocabulary/multiple-choice/list
func (h *QuizHandler) MultipleChoiceList(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	limit, err := queryLimit(r, h.listLimit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	list, err := h.service.MultipleChoiceList(r.Context(), userID, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*service.MultipleChoiceList
	}{true, list}, logger)
}

// FillBlank は GET /vocabulary/fill-blank
func (h *QuizHandler) FillBlank(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	q, err := h.service.FillBlank(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct {
		Success  bool                     `json:"success"`
		Question *model.FillBlankQuestion `json:"question"`
	}{true, q}, logger)
}

// CheckFillBlank は POST /vocabulary/fill-blank/check
func (h *QuizHandler) CheckFillBlank(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CheckFillBlankRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	vocabularyID, err := uuid.Parse(req.VocabularyID)
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "Invalid vocabularyId format", "vocabularyId", model.ErrInvalidInput))
		return
	}

	result, err := h.service.CheckFillBlank(r.Context(), userID, vocabularyID, req.Answer)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.CheckFillBlankResponse
	}{true, result}, logger)
}
