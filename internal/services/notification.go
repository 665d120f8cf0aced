package services

import (
	"context"
	"fmt"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/metrics"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification event names pushed to the owner's realtime connections.
const (
	EventNotificationCreated   = "notification.created"
	EventNotificationRead      = "notification.read"
	EventNotificationReadAll   = "notification.read_all"
	EventNotificationDeleted   = "notification.deleted"
	EventNotificationRecovered = "notification.recovered"
)

// Publisher delivers an event to every live connection of a user.
type Publisher interface {
	Publish(userID, event string, payload interface{})
}

type NotificationService struct {
	notifications *store.Store[models.Notification]
	users         *store.Store[models.User]
	publisher     Publisher
}

func NewNotificationService(db *gorm.DB, publisher Publisher) *NotificationService {
	return &NotificationService{
		notifications: store.New[models.Notification](db, "Notification", "User"),
		users:         store.New[models.User](db, "User"),
		publisher:     publisher,
	}
}

func (s *NotificationService) publish(userID, event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(userID, event, payload)
}

func ownedBy(userID string) store.Scope {
	return store.Where("user_id = ?", userID)
}

func (s *NotificationService) List(ctx context.Context, userID string, page store.Page) (*store.Result[models.Notification], error) {
	return s.notifications.List(ctx, page, ownedBy(userID))
}

func (s *NotificationService) ListDeleted(ctx context.Context, userID string, page store.Page) (*store.Result[models.Notification], error) {
	return s.notifications.ListDeleted(ctx, page, ownedBy(userID))
}

func (s *NotificationService) Get(ctx context.Context, id string) (*models.Notification, error) {
	return s.notifications.Get(ctx, id)
}

// GetAny returns the notification whether live or tombstoned.
func (s *NotificationService) GetAny(ctx context.Context, id string) (*models.Notification, error) {
	return s.notifications.GetAny(ctx, id)
}

// Create stores a notification for userID, which must be a live user.
func (s *NotificationService) Create(ctx context.Context, userID string, req types.CreateNotificationRequest) (*models.Notification, error) {
	if req.Title == "" {
		return nil, apperror.Validation("title: is required")
	}
	if req.Message == "" {
		return nil, apperror.Validation("message: is required")
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = models.NotificationInfo
	}
	if !notificationType.Valid() {
		return nil, apperror.Validation("type: must be one of INFO, SUCCESS, WARNING, ERROR")
	}

	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  userID,
		Title:   req.Title,
		Message: req.Message,
		Type:    notificationType,
	}
	if req.Data != nil {
		notification.Data = datatypes.JSONMap(req.Data)
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}

	created, err := s.notifications.Get(ctx, notification.ID)
	if err != nil {
		return nil, err
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	s.publish(userID, EventNotificationCreated, created)
	return created, nil
}

// MarkAsRead is idempotent.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*models.Notification, error) {
	notification, err := s.notifications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}

	updated, err := s.notifications.Update(ctx, id, map[string]interface{}{"is_read": true})
	if err != nil {
		return nil, err
	}

	s.publish(updated.UserID, EventNotificationRead, updated)
	return updated, nil
}

// MarkAllAsRead flips every unread live notification of userID and returns how many changed.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res := s.notifications.DB().WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", res.Error)
	}

	s.publish(userID, EventNotificationReadAll, types.MarkAllReadResponse{Updated: res.RowsAffected})
	return res.RowsAffected, nil
}

func (s *NotificationService) SoftDelete(ctx context.Context, id string) error {
	notification, err := s.notifications.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.notifications.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.publish(notification.UserID, EventNotificationDeleted, map[string]string{"id": id})
	return nil
}

func (s *NotificationService) Recover(ctx context.Context, id string) (*models.Notification, error) {
	recovered, err := s.notifications.Recover(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(recovered.UserID, EventNotificationRecovered, recovered)
	return recovered, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifications.Count(ctx, ownedBy(userID), store.Where("is_read = ?", false))
}
