package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
)

// UserPolicy gates the user directory to administrators, with editors allowed to read single users.
var UserPolicy = Policy{
	List:        []models.Role{models.RoleAdmin},
	ListDeleted: []models.Role{models.RoleAdmin},
	Get:         []models.Role{models.RoleAdmin, models.RoleEditor},
	Create:      []models.Role{models.RoleAdmin},
	Update:      []models.Role{models.RoleAdmin},
	Delete:      []models.Role{models.RoleAdmin},
	HardDelete:  []models.Role{models.RoleAdmin},
	Recover:     []models.Role{models.RoleAdmin},
}

type UserService = ResourceService[models.User, types.CreateUserRequest, types.UpdateUserRequest]

type UserHandler struct {
	*ResourceHandler[models.User, types.CreateUserRequest, types.UpdateUserRequest]
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{NewResourceHandler[models.User, types.CreateUserRequest, types.UpdateUserRequest](service, UserPolicy)}
}

func (h *UserHandler) Register(group *gin.RouterGroup, authn gin.HandlerFunc) {
	h.mount(group, authn, h)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"   minimum(1)
// @Param        limit  query     int  false  "Limit"  minimum(1)
// @Success      200    {object}  types.Response
// @Failure      400    {object}  types.ErrorResponse
// @Failure      401    {object}  types.ErrorResponse
// @Failure      403    {object}  types.ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(ctx *gin.Context) { h.ResourceHandler.List(ctx) }

// ListDeleted godoc
// @Summary      List soft-deleted users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"   minimum(1)
// @Param        limit  query     int  false  "Limit"  minimum(1)
// @Success      200    {object}  types.Response
// @Failure      400    {object}  types.ErrorResponse
// @Failure      401    {object}  types.ErrorResponse
// @Failure      403    {object}  types.ErrorResponse
// @Router       /users/deleted [get]
func (h *UserHandler) ListDeleted(ctx *gin.Context) { h.ResourceHandler.ListDeleted(ctx) }

// Get godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(ctx *gin.Context) { h.ResourceHandler.Get(ctx) }

// Create godoc
// @Summary      Create a user
// @Description  An unknown or missing role becomes VIEWER.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      types.CreateUserRequest  true  "User"
// @Success      201   {object}  types.Response
// @Failure      400   {object}  types.ErrorResponse
// @Failure      401   {object}  types.ErrorResponse
// @Failure      403   {object}  types.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(ctx *gin.Context) { h.ResourceHandler.Create(ctx) }

// Update godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "User ID"
// @Param        body  body      types.UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  types.Response
// @Failure      400   {object}  types.ErrorResponse
// @Failure      401   {object}  types.ErrorResponse
// @Failure      403   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /users/{id} [put]
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(ctx *gin.Context) { h.ResourceHandler.Update(ctx) }

// SoftDelete godoc
// @Summary      Soft-delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) SoftDelete(ctx *gin.Context) { h.ResourceHandler.SoftDelete(ctx) }

// HardDelete godoc
// @Summary      Permanently delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /users/{id}/permanent [delete]
func (h *UserHandler) HardDelete(ctx *gin.Context) { h.ResourceHandler.HardDelete(ctx) }

// Recover godoc
// @Summary      Recover a soft-deleted user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /users/{id}/recover [post]
func (h *UserHandler) Recover(ctx *gin.Context) { h.ResourceHandler.Recover(ctx) }
