package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/monocle-dev/herald/internal/utils"
)

type NotificationService interface {
	List(ctx context.Context, userID string, page store.Page) (*store.Result[models.Notification], error)
	ListDeleted(ctx context.Context, userID string, page store.Page) (*store.Result[models.Notification], error)
	Get(ctx context.Context, id string) (*models.Notification, error)
	GetAny(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, userID string, req types.CreateNotificationRequest) (*models.Notification, error)
	MarkAsRead(ctx context.Context, id string) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	SoftDelete(ctx context.Context, id string) error
	Recover(ctx context.Context, id string) (*models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// WebSocketServer upgrades a request into a realtime stream for userID.
type WebSocketServer interface {
	ServeWS(ctx *gin.Context, userID string)
}

type NotificationHandler struct {
	service NotificationService
	ws      WebSocketServer
}

func NewNotificationHandler(service NotificationService, ws WebSocketServer) *NotificationHandler {
	return &NotificationHandler{service: service, ws: ws}
}

// Register mounts the notification routes; every route requires a token.
func (h *NotificationHandler) Register(group *gin.RouterGroup, authn gin.HandlerFunc) {
	group.Use(authn)

	group.GET("", h.List)
	group.GET("/deleted", h.ListDeleted)
	group.GET("/unread/count", h.UnreadCount)
	group.GET("/ws", h.Stream)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PATCH("/read/all", h.MarkAllAsRead)
	group.PATCH("/:id/read", h.MarkAsRead)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/recover", h.Recover)
}

// owned loads the notification named by :id and checks it belongs to the caller.
func (h *NotificationHandler) owned(ctx *gin.Context, includeDeleted bool) (*models.Notification, bool) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return nil, false
	}

	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return nil, false
	}

	var notification *models.Notification
	if includeDeleted {
		notification, err = h.service.GetAny(ctx.Request.Context(), id)
	} else {
		notification, err = h.service.Get(ctx.Request.Context(), id)
	}
	if err != nil {
		_ = ctx.Error(err)
		return nil, false
	}

	if notification.UserID != userID {
		_ = ctx.Error(apperror.Forbidden("You do not have access to this notification"))
		return nil, false
	}

	return notification, true
}

// List godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"   minimum(1)
// @Param        limit  query     int  false  "Limit"  minimum(1)
// @Success      200    {object}  types.Response
// @Failure      401    {object}  types.ErrorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	page, ok := bindPage(ctx)
	if !ok {
		return
	}

	result, err := h.service.List(ctx.Request.Context(), userID, page)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respondPage(ctx, result)
}

// ListDeleted godoc
// @Summary      List the caller's soft-deleted notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"   minimum(1)
// @Param        limit  query     int  false  "Limit"  minimum(1)
// @Success      200    {object}  types.Response
// @Failure      400    {object}  types.ErrorResponse
// @Failure      401    {object}  types.ErrorResponse
// @Router       /notifications/deleted [get]
func (h *NotificationHandler) ListDeleted(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	page, ok := bindPage(ctx)
	if !ok {
		return
	}

	result, err := h.service.ListDeleted(ctx.Request.Context(), userID, page)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respondPage(ctx, result)
}

// UnreadCount godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.Response
// @Router       /notifications/unread/count [get]
func (h *NotificationHandler) UnreadCount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	count, err := h.service.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, types.UnreadCountResponse{Count: count})
}

// Get godoc
// @Summary      Get one of the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /notifications/{id} [get]
func (h *NotificationHandler) Get(ctx *gin.Context) {
	notification, ok := h.owned(ctx, false)
	if !ok {
		return
	}

	respond(ctx, http.StatusOK, notification)
}

// Create godoc
// @Summary      Create a notification
// @Description  Administrators and editors may target another user with userId.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      types.CreateNotificationRequest  true  "Notification"
// @Success      201   {object}  types.Response
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /notifications [post]
func (h *NotificationHandler) Create(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var body types.CreateNotificationRequest
	if !bindJSON(ctx, &body) {
		return
	}

	target := user.ID
	if body.UserID != "" && body.UserID != user.ID {
		if !utils.HasRole(ctx, models.RoleAdmin, models.RoleEditor) {
			_ = ctx.Error(apperror.Forbidden("You can only create notifications for yourself"))
			return
		}
		target = body.UserID
	}

	notification, err := h.service.Create(ctx.Request.Context(), target, body)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusCreated, notification)
}

// MarkAllAsRead godoc
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.Response
// @Router       /notifications/read/all [patch]
func (h *NotificationHandler) MarkAllAsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	updated, err := h.service.MarkAllAsRead(ctx.Request.Context(), userID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, types.MarkAllReadResponse{Updated: updated})
}

// MarkAsRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(ctx *gin.Context) {
	notification, ok := h.owned(ctx, false)
	if !ok {
		return
	}

	updated, err := h.service.MarkAsRead(ctx.Request.Context(), notification.ID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, updated)
}

// Delete godoc
// @Summary      Soft-delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(ctx *gin.Context) {
	notification, ok := h.owned(ctx, false)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(ctx.Request.Context(), notification.ID); err != nil {
		_ = ctx.Error(err)
		return
	}

	respondMessage(ctx, "Notification deleted successfully")
}

// Recover godoc
// @Summary      Recover a soft-deleted notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  types.Response
// @Failure      401  {object}  types.ErrorResponse
// @Failure      403  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /notifications/{id}/recover [post]
func (h *NotificationHandler) Recover(ctx *gin.Context) {
	notification, ok := h.owned(ctx, true)
	if !ok {
		return
	}

	recovered, err := h.service.Recover(ctx.Request.Context(), notification.ID)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	respond(ctx, http.StatusOK, recovered)
}

// Stream godoc
// @Summary      Stream notification events
// @Description  Upgrades to a websocket that receives the caller's notification events. Browsers may pass the token as ?token=.
// @Tags         notifications
// @Security     BearerAuth
// @Param        token  query  string  false  "Bearer token for clients that cannot set headers"
// @Success      101
// @Failure      401  {object}  types.ErrorResponse
// @Router       /notifications/ws [get]
func (h *NotificationHandler) Stream(ctx *gin.Context) {
	if h.ws == nil {
		_ = ctx.Error(apperror.NotFound("Realtime notifications are disabled"))
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	h.ws.ServeWS(ctx, userID)
}
