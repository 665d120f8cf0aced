package types

import "github.com/monocle-dev/herald/internal/models"

// Response is the success envelope.
type Response struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// ErrorResponse is the failure envelope; Stack is only filled in development.
type ErrorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

type LoginResponse struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	User   *models.User `json:"user"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
