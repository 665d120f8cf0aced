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

func TestHealthServiceCRUD(t *testing.T) {
	svc := NewHealthService(setupTestDB(t))
	ctx := context.Background()

	h, err := svc.Create(ctx, types.CreateHealthRequest{Name: "database"})
	require.NoError(t, err)
	assert.Equal(t, models.HealthUp, h.Status)

	down := models.HealthDown
	updated, err := svc.Update(ctx, h.ID, types.UpdateHealthRequest{Status: &down, Details: strPtr("primary unreachable")})
	require.NoError(t, err)
	assert.Equal(t, models.HealthDown, updated.Status)
	assert.Equal(t, "primary unreachable", updated.Details)
	assert.Equal(t, "database", updated.Name)

	bogus := models.HealthStatus("SIDEWAYS")
	_, err = svc.Update(ctx, h.ID, types.UpdateHealthRequest{Status: &bogus})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	require.NoError(t, svc.SoftDelete(ctx, h.ID))
	res, err := svc.ListDeleted(ctx, store.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Pagination.Total)

	_, err = svc.Recover(ctx, h.ID)
	require.NoError(t, err)

	got, err := svc.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)
}
