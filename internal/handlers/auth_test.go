package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(svc *MockAuthService) http.Handler {
	r, authn := newTestEngine()
	NewAuthHandler(svc).Register(r.Group("/api/v1/auth"), authn)
	return r
}

func TestLoginSuccess(t *testing.T) {
	svc := new(MockAuthService)
	r := newAuthRouter(svc)

	user := &models.User{Email: "admin@example.com", Password: "$2a$hash", Role: models.RoleAdmin}
	svc.On("Login", mock.Anything, "admin@example.com", "admin@123").Return("signed-token", user, nil)

	w, resp := perform(t, r, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{
		Email: "admin@example.com", Password: "admin@123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.StatusSuccess, resp.Status)
	assert.Equal(t, "signed-token", resp.Token)
	assert.NotContains(t, w.Body.String(), "$2a$hash")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ADMIN", body["user"].(map[string]interface{})["role"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	r := newAuthRouter(svc)

	svc.On("Login", mock.Anything, "admin@example.com", "nope").Return("", nil, apperror.InvalidCredentials())

	w, resp := perform(t, r, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{
		Email: "admin@example.com", Password: "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", resp.Message)
}

func TestLoginMissingFields(t *testing.T) {
	svc := new(MockAuthService)
	r := newAuthRouter(svc)

	w, resp := perform(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email: is required, password: is required", resp.Message)
}

func TestRegister(t *testing.T) {
	svc := new(MockAuthService)
	r := newAuthRouter(svc)

	req := types.RegisterRequest{Email: "new@example.com", Password: "Valid1!pass"}
	svc.On("Register", mock.Anything, req).Return("tok", &models.User{Email: req.Email, Role: models.RoleViewer}, nil)

	w, resp := perform(t, r, http.MethodPost, "/api/v1/auth/register", "", req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "tok", resp.Token)
}

func TestMe(t *testing.T) {
	svc := new(MockAuthService)
	r := newAuthRouter(svc)

	svc.On("Me", mock.Anything, viewerID).Return(&models.User{Email: "v@example.com", Role: models.RoleViewer}, nil)

	w, _ := perform(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = perform(t, r, http.MethodGet, "/api/v1/auth/me", tokenFor(t, viewerID, models.RoleViewer), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
