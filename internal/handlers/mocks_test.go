package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockUserService implements ResourceService for users.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, page store.Page) (*store.Result[models.User], error) {
	args := m.Called(ctx, page)
	res, _ := args.Get(0).(*store.Result[models.User])
	return res, args.Error(1)
}

func (m *MockUserService) ListDeleted(ctx context.Context, page store.Page) (*store.Result[models.User], error) {
	args := m.Called(ctx, page)
	res, _ := args.Get(0).(*store.Result[models.User])
	return res, args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req types.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, req types.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) HardDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) Recover(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// MockAuthService implements AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func (m *MockAuthService) Register(ctx context.Context, req types.RegisterRequest) (string, *models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// MockNotificationService implements NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, page store.Page) (*store.Result[models.Notification], error) {
	args := m.Called(ctx, userID, page)
	res, _ := args.Get(0).(*store.Result[models.Notification])
	return res, args.Error(1)
}

func (m *MockNotificationService) ListDeleted(ctx context.Context, userID string, page store.Page) (*store.Result[models.Notification], error) {
	args := m.Called(ctx, userID, page)
	res, _ := args.Get(0).(*store.Result[models.Notification])
	return res, args.Error(1)
}

func (m *MockNotificationService) Get(ctx context.Context, id string) (*models.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationService) GetAny(ctx context.Context, id string) (*models.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationService) Create(ctx context.Context, userID string, req types.CreateNotificationRequest) (*models.Notification, error) {
	args := m.Called(ctx, userID, req)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, id string) (*models.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationService) Recover(ctx context.Context, id string) (*models.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type noopWS struct{}

func (noopWS) ServeWS(ctx *gin.Context, userID string) {}

// MockHealthService implements ResourceService for health records.
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) List(ctx context.Context, page store.Page) (*store.Result[models.Health], error) {
	args := m.Called(ctx, page)
	res, _ := args.Get(0).(*store.Result[models.Health])
	return res, args.Error(1)
}

func (m *MockHealthService) ListDeleted(ctx context.Context, page store.Page) (*store.Result[models.Health], error) {
	args := m.Called(ctx, page)
	res, _ := args.Get(0).(*store.Result[models.Health])
	return res, args.Error(1)
}

func (m *MockHealthService) Get(ctx context.Context, id string) (*models.Health, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.Health)
	return h, args.Error(1)
}

func (m *MockHealthService) Create(ctx context.Context, req types.CreateHealthRequest) (*models.Health, error) {
	args := m.Called(ctx, req)
	h, _ := args.Get(0).(*models.Health)
	return h, args.Error(1)
}

func (m *MockHealthService) Update(ctx context.Context, id string, req types.UpdateHealthRequest) (*models.Health, error) {
	args := m.Called(ctx, id, req)
	h, _ := args.Get(0).(*models.Health)
	return h, args.Error(1)
}

func (m *MockHealthService) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHealthService) HardDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockHealthService) Recover(ctx context.Context, id string) (*models.Health, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.Health)
	return h, args.Error(1)
}
