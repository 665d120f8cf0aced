package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
)

type AuthenticatedUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

func bearerToken(ctx *gin.Context) (string, error) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		// Browsers cannot set headers on websocket handshakes.
		if websocket.IsWebSocketUpgrade(ctx.Request) {
			if token := ctx.Query("token"); token != "" {
				return token, nil
			}
		}
		return "", apperror.Unauthenticated("Authorization token is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.Unauthenticated("Authorization header format must be Bearer {token}")
	}

	return strings.TrimSpace(parts[1]), nil
}

// Authenticate verifies the bearer token and stores its claims under types.ContextUserKey.
// Claims are trusted as issued; the user row is not re-read.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := bearerToken(ctx)
		if err != nil {
			_ = ctx.Error(err)
			ctx.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			_ = ctx.Error(err)
			ctx.Abort()
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    claims.ID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		ctx.Next()
	}
}

// Authorize lets the request through only when the authenticated user holds one of roles.
// It must run after Authenticate.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)
		user, ok := value.(AuthenticatedUser)
		if !exists || !ok {
			_ = ctx.Error(apperror.Unauthenticated("User not authenticated"))
			ctx.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}

		_ = ctx.Error(apperror.Forbidden("You do not have permission to perform this action"))
		ctx.Abort()
	}
}
