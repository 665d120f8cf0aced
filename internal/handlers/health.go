package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
)

// HealthCheck is the liveness probe mounted at /api/health, outside the versioned API.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Herald is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HealthPolicy gates the health records resource: reads are public, writes need an editor.
var HealthPolicy = Policy{
	List:        nil,
	ListDeleted: []models.Role{models.RoleAdmin, models.RoleEditor},
	Get:         nil,
	Create:      []models.Role{models.RoleAdmin, models.RoleEditor},
	Update:      []models.Role{models.RoleAdmin, models.RoleEditor},
	Delete:      []models.Role{models.RoleAdmin, models.RoleEditor},
	HardDelete:  []models.Role{models.RoleAdmin},
	Recover:     []models.Role{models.RoleAdmin, models.RoleEditor},
}

type HealthService = ResourceService[models.Health, types.CreateHealthRequest, types.UpdateHealthRequest]

type HealthHandler struct {
	*ResourceHandler[models.Health, types.CreateHealthRequest, types.UpdateHealthRequest]
}

func NewHealthHandler(service HealthService) *HealthHandler {
	return &HealthHandler{NewResourceHandler[models.Health, types.CreateHealthRequest, types.UpdateHealthRequest](service, HealthPolicy)}
}

func (h *HealthHandler) Register(group *gin.RouterGroup, authn gin.HandlerFunc) {
	h.mount(group, authn, h)
}

// List godoc
// @Summary      List health records
// @Tags         healths
// @Produce      json
// @Param        page   query     int  false  "Page"   minimum(1)
// @Param        limit  query     int  false  "Limit"  minimum(1)
// @Success      200    {object}  types.Response
// @Failure      400    {object}  types.ErrorResponse
// @Router       /healths [get]
func (h *HealthHandler) List(ctx *gin.Context) { h.ResourceHandler.List(ctx) }

// ListDeleted godoc
// @Summary      List soft-deleted health records
// @Tags         healths
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"   minimum(1)
// @Param        limit  query     int  false  "Limit"  minimum(1)
// @Success      200    {object}  types.Response
// @Failure      401    {object}  types.ErrorResponse
// @Failure      403    {object}  types.ErrorResponse
// @Router       /healths/deleted [get]
func (h *HealthHandler) ListDeleted(ctx *gin.Context) { h.ResourceHandler.ListDeleted(ctx) }

// Get godoc
// @Summary      Get a health record
// @Tags         healths
// @Produce      json
// @Param        id   path      string  true  "Health ID"
// @Success      200  {object}  types.Response
// @Failure      404  {object}  types.ErrorResponse
// @Router       /healths/{id} [get]
func (h *HealthHandler) Get(ctx *gin.Context) { h.ResourceHandler.Get(ctx) }

// Create godoc
// @Summary      Create a health record
// @Tags         healths
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      types.CreateHealthRequest  true  "Health record"
// @Success      201   {object}  types.Response
// @Failure      400   {object}  types.ErrorResponse
// @Failure      401   {object}  types.ErrorResponse
// @Failure      403   {object}  types.ErrorResponse
// @Router       /healths [post]
func (h *HealthHandler) Create(ctx *gin.Context) { h.ResourceHandler.Create(ctx) }

// Update godoc
// @Summary      Update a health record
// @Tags         healths
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Health ID"
// @Param        body  body      types.UpdateHealthRequest  true  "Fields to change"
// @Success      200   {object}  types.Response
// @Failure      400   {object}  types.ErrorResponse
// @Failure      401   {object}  types.ErrorResponse
// @Failure      403   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /healths/{id} [put]
// @Router       /healths/{id} [patch]
func (h *HealthHandler) Update(ctx *gin.Context) { h.ResourceHandler.Update(ctx) }

// SoftDelete godoc
// @Summary      Soft-delete a health record
// @Tags         healths
// @Security     BearerAuth
// @Param        id   path  string  true  "Health ID"
// @Success      204
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /healths/{id} [delete]
func (h *HealthHandler) SoftDelete(ctx *gin.Context) { h.ResourceHandler.SoftDelete(ctx) }

// HardDelete godoc
// @Summary      Permanently delete a health record
// @Tags         healths
// @Security     BearerAuth
// @Param        id   path  string  true  "Health ID"
// @Success      204
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /healths/{id}/permanent [delete]
func (h *HealthHandler) HardDelete(ctx *gin.Context) { h.ResourceHandler.HardDelete(ctx) }

// Recover godoc
// @Summary      Recover a soft-deleted health record
// @Tags         healths
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Health ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /healths/{id}/recover [post]
func (h *HealthHandler) Recover(ctx *gin.Context) { h.ResourceHandler.Recover(ctx) }
