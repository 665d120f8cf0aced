package services

import (
	"context"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
	"gorm.io/gorm"
)

type HealthService struct {
	healths *store.Store[models.Health]
}

func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{healths: store.New[models.Health](db, "Health")}
}

func (s *HealthService) List(ctx context.Context, page store.Page) (*store.Result[models.Health], error) {
	return s.healths.List(ctx, page)
}

func (s *HealthService) ListDeleted(ctx context.Context, page store.Page) (*store.Result[models.Health], error) {
	return s.healths.ListDeleted(ctx, page)
}

func (s *HealthService) Get(ctx context.Context, id string) (*models.Health, error) {
	return s.healths.Get(ctx, id)
}

func (s *HealthService) Create(ctx context.Context, req types.CreateHealthRequest) (*models.Health, error) {
	health := &models.Health{
		Name:    req.Name,
		Status:  req.Status,
		Details: req.Details,
	}
	if health.Status == "" {
		health.Status = models.HealthUp
	}
	if !health.Status.Valid() {
		return nil, apperror.Validation("status: must be one of UP, DEGRADED, DOWN")
	}

	if err := s.healths.Create(ctx, health); err != nil {
		return nil, err
	}
	return health, nil
}

func (s *HealthService) Update(ctx context.Context, id string, req types.UpdateHealthRequest) (*models.Health, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.Validation("status: must be one of UP, DEGRADED, DOWN")
		}
		fields["status"] = *req.Status
	}
	if req.Details != nil {
		fields["details"] = *req.Details
	}
	return s.healths.Update(ctx, id, fields)
}

func (s *HealthService) SoftDelete(ctx context.Context, id string) error {
	return s.healths.SoftDelete(ctx, id)
}

func (s *HealthService) HardDelete(ctx context.Context, id string) error {
	return s.healths.HardDelete(ctx, id)
}

func (s *HealthService) Recover(ctx context.Context, id string) (*models.Health, error) {
	return s.healths.Recover(ctx, id)
}
