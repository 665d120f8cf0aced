package types

import "github.com/monocle-dev/herald/internal/models"

// PageQuery binds ?page=&limit=. Absent values take the defaults; zero or negative values are rejected.
type PageQuery struct {
	Page  *int `form:"page" binding:"omitempty,min=1"`
	Limit *int `form:"limit" binding:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password_strength"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password_strength"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,password_strength"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}

type CreateHealthRequest struct {
	Name    string              `json:"name" binding:"required"`
	Status  models.HealthStatus `json:"status" binding:"omitempty,oneof=UP DEGRADED DOWN"`
	Details string              `json:"details"`
}

type UpdateHealthRequest struct {
	Name    *string              `json:"name" binding:"omitempty,min=1"`
	Status  *models.HealthStatus `json:"status" binding:"omitempty,oneof=UP DEGRADED DOWN"`
	Details *string              `json:"details"`
}

type CreateNotificationRequest struct {
	UserID  string                  `json:"userId" binding:"omitempty,uuid"`
	Title   string                  `json:"title" binding:"required"`
	Message string                  `json:"message" binding:"required"`
	Type    models.NotificationType `json:"type" binding:"omitempty,oneof=INFO SUCCESS WARNING ERROR"`
	Data    map[string]interface{}  `json:"data"`
}
