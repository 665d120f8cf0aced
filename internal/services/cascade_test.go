package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/monocle-dev/herald/db"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHardDeleteRemovesNotifications(t *testing.T) {
	conn, err := db.ConnectDatabase("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(conn))
	ctx := context.Background()

	users := NewUserService(conn, testHasher)
	notifications := NewNotificationService(conn, nil)

	user, err := users.Create(ctx, types.CreateUserRequest{Email: "owner@example.com", Password: "Valid1!pass"})
	require.NoError(t, err)
	_, err = notifications.Create(ctx, user.ID, types.CreateNotificationRequest{Title: "Hi", Message: "Welcome"})
	require.NoError(t, err)

	require.NoError(t, users.HardDelete(ctx, user.ID))

	var orphans int64
	require.NoError(t, conn.Unscoped().Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
}
