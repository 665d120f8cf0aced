package services

import (
	"context"

	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/metrics"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
)

type AuthService struct {
	users  *UserService
	tokens *auth.TokenService
	hasher auth.PasswordHasher
}

func NewAuthService(users *UserService, tokens *auth.TokenService, hasher auth.PasswordHasher) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher}
}

// Login checks the credentials of a live user and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, apperror.InvalidCredentials()
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Register creates a VIEWER account; callers cannot pick their role.
func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (string, *models.User, error) {
	user, err := s.users.Create(ctx, types.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     string(models.RoleViewer),
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, apperror.Unauthenticated("User no longer exists")
		}
		return nil, err
	}
	return user, nil
}
