package services

import (
	"context"
	"testing"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	svc   *NotificationService
	users *UserService
	pub   *recordingPublisher
	alice *models.User
	bob   *models.User
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()

	conn := setupTestDB(t)
	pub := &recordingPublisher{}
	users := NewUserService(conn, testHasher)

	alice, err := users.Create(context.Background(), types.CreateUserRequest{Email: "alice@example.com", Password: "Valid1!pass"})
	require.NoError(t, err)
	bob, err := users.Create(context.Background(), types.CreateUserRequest{Email: "bob@example.com", Password: "Valid1!pass"})
	require.NoError(t, err)

	return &notificationFixture{
		svc:   NewNotificationService(conn, pub),
		users: users,
		pub:   pub,
		alice: alice,
		bob:   bob,
	}
}

func (f *notificationFixture) create(t *testing.T, userID, title string) *models.Notification {
	t.Helper()

	n, err := f.svc.Create(context.Background(), userID, types.CreateNotificationRequest{
		Title:   title,
		Message: title + " body",
	})
	require.NoError(t, err)
	return n
}

func TestNotificationCreate(t *testing.T) {
	f := newNotificationFixture(t)

	n, err := f.svc.Create(context.Background(), f.alice.ID, types.CreateNotificationRequest{
		Title:   "Welcome",
		Message: "Hello",
		Data:    map[string]interface{}{"link": "/welcome"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationInfo, n.Type)
	assert.False(t, n.IsRead)
	assert.Equal(t, "/welcome", n.Data["link"])
	require.NotNil(t, n.User)
	assert.Equal(t, "alice@example.com", n.User.Email)

	events := f.pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, f.alice.ID, events[0].UserID)
	assert.Equal(t, EventNotificationCreated, events[0].Event)
}

func TestNotificationCreateForMissingOrDeletedUser(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()
	req := types.CreateNotificationRequest{Title: "t", Message: "m"}

	_, err := f.svc.Create(ctx, "00000000-0000-0000-0000-000000000000", req)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	require.NoError(t, f.users.SoftDelete(ctx, f.bob.ID))
	_, err = f.svc.Create(ctx, f.bob.ID, req)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestNotificationCreateRejectsUnknownType(t *testing.T) {
	f := newNotificationFixture(t)

	_, err := f.svc.Create(context.Background(), f.alice.ID, types.CreateNotificationRequest{
		Title: "t", Message: "m", Type: "URGENT",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestNotificationListScopedToOwner(t *testing.T) {
	f := newNotificationFixture(t)
	for i := 0; i < 3; i++ {
		f.create(t, f.alice.ID, "a")
	}
	f.create(t, f.bob.ID, "b")

	res, err := f.svc.List(context.Background(), f.alice.ID, store.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, store.Pagination{Total: 3, Page: 1, Limit: 2, Pages: 2}, res.Pagination)
	for _, n := range res.Items {
		assert.Equal(t, f.alice.ID, n.UserID)
	}
}

func TestNotificationMarkAsReadIsIdempotent(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()
	n := f.create(t, f.alice.ID, "a")

	read, err := f.svc.MarkAsRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	again, err := f.svc.MarkAsRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)

	count, err := f.svc.UnreadCount(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestNotificationMarkAllAsReadOnlyTouchesOwner(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()

	f.create(t, f.alice.ID, "a1")
	f.create(t, f.alice.ID, "a2")
	deleted := f.create(t, f.alice.ID, "a3")
	f.create(t, f.bob.ID, "b1")
	f.create(t, f.bob.ID, "b2")

	require.NoError(t, f.svc.SoftDelete(ctx, deleted.ID))

	updated, err := f.svc.MarkAllAsRead(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	aliceUnread, err := f.svc.UnreadCount(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, aliceUnread)

	bobUnread, err := f.svc.UnreadCount(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, bobUnread)

	tomb, err := f.svc.GetAny(ctx, deleted.ID)
	require.NoError(t, err)
	assert.False(t, tomb.IsRead, "tombstoned notifications are left alone")
}

func TestNotificationSoftDeleteAndRecover(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()
	n := f.create(t, f.alice.ID, "a")

	require.NoError(t, f.svc.SoftDelete(ctx, n.ID))

	_, err := f.svc.Get(ctx, n.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	deleted, err := f.svc.ListDeleted(ctx, f.alice.ID, store.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, deleted.Items, 1)

	recovered, err := f.svc.Recover(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, recovered.ID)

	_, err = f.svc.Recover(ctx, n.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	var names []string
	for _, e := range f.pub.Events() {
		names = append(names, e.Event)
	}
	assert.Equal(t, []string{EventNotificationCreated, EventNotificationDeleted, EventNotificationRecovered}, names)
}

func TestNotificationServiceWithoutPublisher(t *testing.T) {
	conn := setupTestDB(t)
	users := NewUserService(conn, testHasher)
	u, err := users.Create(context.Background(), types.CreateUserRequest{Email: "solo@example.com", Password: "Valid1!pass"})
	require.NoError(t, err)

	svc := NewNotificationService(conn, nil)
	_, err = svc.Create(context.Background(), u.ID, types.CreateNotificationRequest{Title: "t", Message: "m"})
	assert.NoError(t, err)
}
