package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/monocle-dev/herald/internal/apperror"
	"gorm.io/gorm"
)

// Scope narrows a query, e.g. to a single owner.
type Scope = func(*gorm.DB) *gorm.DB

// Store implements the resource lifecycle (live, tombstoned, gone) for a model embedding models.BaseModel.
type Store[T any] struct {
	db       *gorm.DB
	name     string
	preloads []string
}

// New returns a store for T. name is used in NotFound messages ("User not found").
func New[T any](db *gorm.DB, name string, preloads ...string) *Store[T] {
	return &Store[T]{db: db, name: name, preloads: preloads}
}

func (s *Store[T]) DB() *gorm.DB { return s.db }

func (s *Store[T]) notFound() error {
	return apperror.NotFound(fmt.Sprintf("%s not found", s.name))
}

func (s *Store[T]) withPreloads(q *gorm.DB) *gorm.DB {
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

// List returns live rows, newest first.
func (s *Store[T]) List(ctx context.Context, page Page, scopes ...Scope) (*Result[T], error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).Model(new(T)).Scopes(scopes...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count %s: %w", s.name, err)
	}

	items := make([]T, 0, page.Limit)
	err = s.withPreloads(base.Session(&gorm.Session{})).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}

	return &Result[T]{Items: items, Pagination: NewPagination(total, page)}, nil
}

// ListDeleted returns tombstoned rows, most recently deleted first.
func (s *Store[T]) ListDeleted(ctx context.Context, page Page, scopes ...Scope) (*Result[T], error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("deleted_at IS NOT NULL").
		Scopes(scopes...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count deleted %s: %w", s.name, err)
	}

	items := make([]T, 0, page.Limit)
	err = s.withPreloads(base.Session(&gorm.Session{})).
		Order("deleted_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list deleted %s: %w", s.name, err)
	}

	return &Result[T]{Items: items, Pagination: NewPagination(total, page)}, nil
}

// Get returns the live row with id.
func (s *Store[T]) Get(ctx context.Context, id string, scopes ...Scope) (*T, error) {
	var item T
	err := s.withPreloads(s.db.WithContext(ctx).Scopes(scopes...)).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("get %s: %w", s.name, err)
	}
	return &item, nil
}

// GetAny returns the row with id whether live or tombstoned.
func (s *Store[T]) GetAny(ctx context.Context, id string, scopes ...Scope) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).Unscoped().Scopes(scopes...).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("get %s: %w", s.name, err)
	}
	return &item, nil
}

func (s *Store[T]) Create(ctx context.Context, item *T) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Wrap(apperror.KindValidation, fmt.Sprintf("%s already exists", s.name), err)
		}
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

// Update merges fields into the live row with id and returns the refreshed row.
func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty change set still counts as a touch.
	if len(fields) == 0 {
		fields = map[string]interface{}{"updated_at": time.Now()}
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(fields).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.KindValidation, fmt.Sprintf("%s already exists", s.name), err)
		}
		return nil, fmt.Errorf("update %s: %w", s.name, err)
	}

	return s.Get(ctx, id)
}

// SoftDelete tombstones a live row.
func (s *Store[T]) SoftDelete(ctx context.Context, id string, scopes ...Scope) error {
	res := s.db.WithContext(ctx).Scopes(scopes...).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", s.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.notFound()
	}
	return nil
}

// HardDelete physically removes the row, live or tombstoned.
func (s *Store[T]) HardDelete(ctx context.Context, id string, scopes ...Scope) error {
	res := s.db.WithContext(ctx).Unscoped().Scopes(scopes...).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("hard delete %s: %w", s.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.notFound()
	}
	return nil
}

// Recover clears deletedAt on a tombstoned row and returns it.
func (s *Store[T]) Recover(ctx context.Context, id string, scopes ...Scope) (*T, error) {
	res := s.db.WithContext(ctx).Unscoped().Model(new(T)).Scopes(scopes...).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return nil, fmt.Errorf("recover %s: %w", s.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.notFound()
	}
	return s.Get(ctx, id)
}

// Count returns the number of live rows matching scopes.
func (s *Store[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", s.name, err)
	}
	return total, nil
}

// Exists reports whether any row matches scopes; tombstoned rows count when includeDeleted is set.
func (s *Store[T]) Exists(ctx context.Context, includeDeleted bool, scopes ...Scope) (bool, error) {
	q := s.db.WithContext(ctx).Model(new(T))
	if includeDeleted {
		q = q.Unscoped()
	}

	var total int64
	if err := q.Scopes(scopes...).Count(&total).Error; err != nil {
		return false, fmt.Errorf("exists %s: %w", s.name, err)
	}
	return total > 0, nil
}

// Where is a Scope adding a single condition.
func Where(query string, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}
