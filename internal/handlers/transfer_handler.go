package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"
)

const (
	maxUploadBytes = 10 << 20
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TransferHandler はxlsxの書き出しと取り込みを扱います
type TransferHandler struct {
	service service.TransferService
	now     func() time.Time
}

func NewTransferHandler(s service.TransferService) *TransferHandler {
	return &TransferHandler{service: s, now: time.Now}
}

// Export は GET /vocabulary/export
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// 失敗時にJSONエラーを返せるよう一度バッファに書く
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), userID, &buf); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	filename := fmt.Sprintf("vocabulary-%s.xlsx", h.now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("Error writing export response", "error", err)
	}
}

// Import は POST /vocabulary/import (multipart, フィールド名 file)
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.Warn("Invalid multipart upload", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST", "Upload must be multipart/form-data up to 10MB", "file", model.ErrInvalidInput))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "file is required", "file", model.ErrInvalidInput))
		return
	}
	defer file.Close()

	result, err := h.service.Import(r.Context(), userID, file)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.ImportResult
	}{true, result}, logger)
}
