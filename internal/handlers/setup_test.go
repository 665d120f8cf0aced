package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/middleware"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	adminID  = "11111111-1111-4111-8111-111111111111"
	editorID = "22222222-2222-4222-8222-222222222222"
	viewerID = "33333333-3333-4333-8333-333333333333"
	otherID  = "44444444-4444-4444-8444-444444444444"
)

var testTokens = auth.NewTokenService("handlers-test-secret", time.Hour)

func newTestEngine() (*gin.Engine, gin.HandlerFunc) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop(), false))
	r.NoRoute(middleware.NoRoute)
	return r, middleware.Authenticate(testTokens)
}

func tokenFor(t *testing.T, id string, role models.Role) string {
	t.Helper()
	token, err := testTokens.Issue(id, string(role)+"@example.com", role)
	require.NoError(t, err)
	return token
}

type apiResponse struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
	Token      string          `json:"token"`
}

func perform(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}
