package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go_vocab_quiz/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxJSONBodyBytes はJSONボディの上限です
const maxJSONBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST", "Request body is required", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewAppError("INVALID_REQUEST", "Request body is required", "", model.ErrInvalidInput)
		}
		return model.NewAppError("INVALID_REQUEST", "Invalid JSON body: "+err.Error(), "", model.ErrInvalidInput)
	}
	return nil
}

// DecodeAndValidate はデコードとバリデーションをまとめて行います
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return NewValidationErrorResponse(ve)
		}
		return model.NewAppError("VALIDATION_ERROR", err.Error(), "", model.ErrInvalidInput)
	}
	return nil
}

func joinMessages(messages []string) string {
	return strings.Join(messages, "; ")
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}
