package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/middleware"
	"github.com/monocle-dev/herald/internal/models"
	"github.com/monocle-dev/herald/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, apperror.Unauthenticated("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, apperror.Unauthenticated("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (string, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return "", err
	}

	return user.ID, nil
}

// HasRole reports whether the current user holds any of roles.
func HasRole(ctx *gin.Context, roles ...models.Role) bool {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

// ParamID returns the named path parameter after checking it is a UUID.
func ParamID(ctx *gin.Context, name string) (string, error) {
	id := ctx.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apperror.Validation(name + ": must be a valid UUID")
	}
	return id, nil
}
