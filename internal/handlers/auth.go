package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/monocle-dev/herald/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, req types.RegisterRequest) (string, *models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(group *gin.RouterGroup, authn gin.HandlerFunc) {
	group.POST("/login", h.Login)
	group.POST("/register", h.SignUp)
	group.GET("/me", authn, h.Me)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      types.LoginRequest  true  "Credentials"
// @Success      200   {object}  types.LoginResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      401   {object}  types.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(ctx *gin.Context) {
	var body types.LoginRequest
	if !bindJSON(ctx, &body) {
		return
	}

	token, user, err := h.service.Login(ctx.Request.Context(), body.Email, body.Password)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.LoginResponse{
		Status: types.StatusSuccess,
		Token:  token,
		User:   user,
	})
}

// SignUp godoc
// @Summary      Register a VIEWER account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      types.RegisterRequest  true  "Account"
// @Success      201   {object}  types.LoginResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var body types.RegisterRequest
	if !bindJSON(ctx, &body) {
		return
	}

	token, user, err := h.service.Register(ctx.Request.Context(), body)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, types.LoginResponse{
		Status: types.StatusSuccess,
		Token:  token,
		User:   user,
	})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	user, err := h.service.Me(ctx.Request.Context(), userID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, user)
}
