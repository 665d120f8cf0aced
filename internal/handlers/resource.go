package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/middleware"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/utils"
)

// ResourceService is the lifecycle a resource exposes over HTTP.
type ResourceService[T, C, U any] interface {
	List(ctx context.Context, page store.Page) (*store.Result[T], error)
	ListDeleted(ctx context.Context, page store.Page) (*store.Result[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req C) (*T, error)
	Update(ctx context.Context, id string, req U) (*T, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	Recover(ctx context.Context, id string) (*T, error)
}

// Policy lists the roles allowed per operation. A nil slice makes the route public;
// an empty non-nil slice admits any authenticated user.
type Policy struct {
	List        []models.Role
	ListDeleted []models.Role
	Get         []models.Role
	Create      []models.Role
	Update      []models.Role
	Delete      []models.Role
	HardDelete  []models.Role
	Recover     []models.Role
}

type ResourceHandler[T, C, U any] struct {
	service ResourceService[T, C, U]
	policy  Policy
}

func NewResourceHandler[T, C, U any](service ResourceService[T, C, U], policy Policy) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{service: service, policy: policy}
}

func guard(authn gin.HandlerFunc, roles []models.Role, h gin.HandlerFunc) []gin.HandlerFunc {
	if roles == nil {
		return []gin.HandlerFunc{h}
	}
	if len(roles) == 0 {
		return []gin.HandlerFunc{authn, h}
	}
	return []gin.HandlerFunc{authn, middleware.Authorize(roles...), h}
}

// lifecycleRoutes is satisfied by ResourceHandler and by the typed handlers that embed it.
type lifecycleRoutes interface {
	List(*gin.Context)
	ListDeleted(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	SoftDelete(*gin.Context)
	HardDelete(*gin.Context)
	Recover(*gin.Context)
}

// Register mounts the lifecycle routes on group.
func (h *ResourceHandler[T, C, U]) Register(group *gin.RouterGroup, authn gin.HandlerFunc) {
	h.mount(group, authn, h)
}

func (h *ResourceHandler[T, C, U]) mount(group *gin.RouterGroup, authn gin.HandlerFunc, routes lifecycleRoutes) {
	group.GET("", guard(authn, h.policy.List, routes.List)...)
	group.GET("/deleted", guard(authn, h.policy.ListDeleted, routes.ListDeleted)...)
	group.GET("/:id", guard(authn, h.policy.Get, routes.Get)...)
	group.POST("", guard(authn, h.policy.Create, routes.Create)...)
	group.PUT("/:id", guard(authn, h.policy.Update, routes.Update)...)
	group.PATCH("/:id", guard(authn, h.policy.Update, routes.Update)...)
	group.DELETE("/:id", guard(authn, h.policy.Delete, routes.SoftDelete)...)
	group.DELETE("/:id/permanent", guard(authn, h.policy.HardDelete, routes.HardDelete)...)
	group.POST("/:id/recover", guard(authn, h.policy.Recover, routes.Recover)...)
}

func (h *ResourceHandler[T, C, U]) List(ctx *gin.Context) {
	page, ok := bindPage(ctx)
	if !ok {
		return
	}

	result, err := h.service.List(ctx.Request.Context(), page)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respondPage(ctx, result)
}

func (h *ResourceHandler[T, C, U]) ListDeleted(ctx *gin.Context) {
	page, ok := bindPage(ctx)
	if !ok {
		return
	}

	result, err := h.service.ListDeleted(ctx.Request.Context(), page)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respondPage(ctx, result)
}

func (h *ResourceHandler[T, C, U]) Get(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	item, err := h.service.Get(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, item)
}

func (h *ResourceHandler[T, C, U]) Create(ctx *gin.Context) {
	var req C
	if !bindJSON(ctx, &req) {
		return
	}

	item, err := h.service.Create(ctx.Request.Context(), req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusCreated, item)
}

func (h *ResourceHandler[T, C, U]) Update(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var req U
	if !bindJSON(ctx, &req) {
		return
	}

	item, err := h.service.Update(ctx.Request.Context(), id, req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, item)
}

func (h *ResourceHandler[T, C, U]) SoftDelete(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := h.service.SoftDelete(ctx.Request.Context(), id); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, C, U]) HardDelete(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := h.service.HardDelete(ctx.Request.Context(), id); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, C, U]) Recover(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	item, err := h.service.Recover(ctx.Request.Context(), id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, item)
}
