package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokens = auth.NewTokenService("middleware-test-secret", time.Hour)

func newEngine(development bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(zerolog.Nop(), development), Recovery(zerolog.Nop()))
	r.NoRoute(NoRoute)
	return r
}

func issue(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := tokens.Issue("user-1", "user@example.com", role)
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, method, path, token string) (*httptest.ResponseRecorder, types.ErrorResponse) {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body types.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func adminOnly() *gin.Engine {
	r := newEngine(false)
	r.GET("/admin", Authenticate(tokens), Authorize(models.RoleAdmin), func(c *gin.Context) {
		user := c.MustGet(types.ContextUserKey).(AuthenticatedUser)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
	})
	return r
}

func TestAuthenticateMissingToken(t *testing.T) {
	w, body := do(adminOnly(), http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, types.StatusFail, body.Status)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Equal(t, "Authorization token is required", body.Message)
}

func TestAuthenticateBadScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	adminOnly().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	w, _ := do(adminOnly(), http.MethodGet, "/admin", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := auth.NewTokenService("another-secret", time.Hour)
	token, err := other.Issue("u", "u@example.com", models.RoleAdmin)
	require.NoError(t, err)
	w, _ = do(adminOnly(), http.MethodGet, "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeWrongRole(t *testing.T) {
	w, body := do(adminOnly(), http.MethodGet, "/admin", issue(t, models.RoleViewer))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, types.StatusFail, body.Status)
}

func TestAuthorizeAllowedRole(t *testing.T) {
	w, _ := do(adminOnly(), http.MethodGet, "/admin", issue(t, models.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"user-1","role":"ADMIN"}`, w.Body.String())
}

func TestAuthorizeWithoutAuthenticate(t *testing.T) {
	r := newEngine(false)
	r.GET("/x", Authorize(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w, _ := do(r, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoRoute(t *testing.T) {
	w, body := do(newEngine(false), http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", body.Message)
	assert.Equal(t, types.StatusFail, body.Status)
}

func TestErrorHandlerHidesInternalErrorsInProduction(t *testing.T) {
	r := newEngine(false)
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("db exploded")) })

	w, body := do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, types.StatusError, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Empty(t, body.Stack)
}

func TestErrorHandlerAddsStackInDevelopment(t *testing.T) {
	r := newEngine(true)
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("db exploded")) })

	_, body := do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, "db exploded", body.Message)
	assert.Contains(t, body.Stack, "db exploded")
}

func TestRecoveryRendersEnvelope(t *testing.T) {
	r := newEngine(false)
	r.GET("/panic", func(c *gin.Context) { panic("oops") })

	w, body := do(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, types.StatusError, body.Status)
}

func TestTranslateEmptyBody(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}

	r := newEngine(false)
	r.POST("/bind", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bind", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Request body is required", body.Message)
}

func TestTranslateKeepsAppErrors(t *testing.T) {
	appErr := Translate(apperror.NotFound("x"))
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, "x", appErr.Message)
}

func TestTranslateFlattensValidationErrors(t *testing.T) {
	type payload struct {
		Email    string `json:"email" validate:"required"`
		Contact  string `json:"contact" validate:"email"`
		Role     string `json:"role" validate:"oneof=ADMIN EDITOR VIEWER"`
		Password string `json:"password" validate:"password_strength"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	require.NoError(t, v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return auth.ValidatePassword(fl.Field().String()) == nil
	}))

	err := v.Struct(payload{Contact: "nope", Role: "ROOT", Password: "short1"})
	require.Error(t, err)

	appErr := Translate(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t,
		"email: is required, contact: must be a valid email address, role: must be one of ADMIN, EDITOR, VIEWER, "+
			"password: must be at least 8 characters and contain a number and a special character",
		appErr.Message)
}

func TestTranslateTypeErrors(t *testing.T) {
	var target struct {
		Email string `json:"email"`
	}
	jsonErr := json.Unmarshal([]byte(`{"email": 5}`), &target)
	require.Error(t, jsonErr)

	appErr := Translate(jsonErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "email: has the wrong type", appErr.Message)

	_, numErr := strconv.Atoi("abc")
	appErr = Translate(numErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, `"abc" is not a valid number`, appErr.Message)

	appErr = Translate(errors.New("boom"))
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(false))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/swagger/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, apiContentSecurityPolicy, w.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))

	dev := gin.New()
	dev.Use(SecurityHeaders(true))
	dev.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = httptest.NewRecorder()
	dev.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
