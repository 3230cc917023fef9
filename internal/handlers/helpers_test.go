package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"go_vocab_quiz/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// sendRequest はリクエストを送り、ステータスコードを検証してボディを返します
func (e *testEnv) sendRequest(t *testing.T, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, e.server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))

	return respBodyBytes
}

// asUser は開発用認証のヘッダーを付けます
func asUser(userID uuid.UUID) map[string]string {
	return map[string]string{"X-User-ID": userID.String()}
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

// verifyErrorCode はエラーレスポンスのコードを検証します
func verifyErrorCode(t *testing.T, body []byte, code string) {
	t.Helper()
	errResp := decode[model.APIErrorResponse](t, body)
	assert.False(t, errResp.Success)
	assert.Equal(t, code, errResp.Error.Code)
}

type vocabularyBody struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Vocabulary model.Vocabulary `json:"vocabulary"`
}

type vocabularyListBody struct {
	Success      bool               `json:"success"`
	Vocabularies []model.Vocabulary `json:"vocabularies"`
	Pagination   model.Pagination   `json:"pagination"`
}

// addVocabulary はAPI経由で単語を登録し、作成された単語を返します
func (e *testEnv) addVocabulary(t *testing.T, userID uuid.UUID, english, vietnamese string) model.Vocabulary {
	t.Helper()
	body := e.sendRequest(t, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/vocabulary/add",
		Body:    map[string]string{"english": english, "vietnamese": vietnamese, "wordType": "noun"},
		Headers: asUser(userID),
	}, http.StatusCreated)
	return decode[vocabularyBody](t, body).Vocabulary
}
