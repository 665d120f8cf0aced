package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/store"
	"github.com/monocle-dev/herald/internal/types"
	"gorm.io/gorm"
)

type UserService struct {
	users  *store.Store[models.User]
	hasher auth.PasswordHasher
}

func NewUserService(db *gorm.DB, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		users:  store.New[models.User](db, "User"),
		hasher: hasher,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.Validation("email: is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.Validation("email: must be a valid email address")
	}
	return nil
}

func (s *UserService) List(ctx context.Context, page store.Page) (*store.Result[models.User], error) {
	return s.users.List(ctx, page)
}

func (s *UserService) ListDeleted(ctx context.Context, page store.Page) (*store.Result[models.User], error) {
	return s.users.ListDeleted(ctx, page)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.Get(ctx, id)
}

// FindByEmail returns the live user with email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.users.DB().WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return &user, nil
}

// emailTaken checks live and tombstoned rows; the unique index covers both.
func (s *UserService) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	scopes := []store.Scope{store.Where("email = ?", email)}
	if exceptID != "" {
		scopes = append(scopes, store.Where("id <> ?", exceptID))
	}
	return s.users.Exists(ctx, true, scopes...)
}

func (s *UserService) Create(ctx context.Context, req types.CreateUserRequest) (*models.User, error) {
	email := NormalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Validation("Email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Email:    email,
		Password: hash,
		Role:     models.ParseRole(req.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperror.IsKind(err, apperror.KindValidation) {
			return nil, apperror.Validation("Email already exists")
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req types.UpdateUserRequest) (*models.User, error) {
	if _, err := s.users.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		taken, err := s.emailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Validation("Email already exists")
		}
		fields["email"] = email
	}

	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		fields["password"] = hash
	}

	if req.Role != nil {
		role := models.Role(strings.ToUpper(strings.TrimSpace(*req.Role)))
		if !role.Valid() {
			return nil, apperror.Validation("role: must be one of ADMIN, EDITOR, VIEWER")
		}
		fields["role"] = role
	}

	return s.users.Update(ctx, id, fields)
}

func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}

func (s *UserService) HardDelete(ctx context.Context, id string) error {
	return s.users.HardDelete(ctx, id)
}

func (s *UserService) Recover(ctx context.Context, id string) (*models.User, error) {
	return s.users.Recover(ctx, id)
}
