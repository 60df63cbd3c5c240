// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"time"

	"github.com/userhub/userhub/internal/model"
)

// UserResponse is the JSON representation of a user returned by the API.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ToUserResponse converts a User domain model to its API representation.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

// UpdateUserRequest is the body of PATCH /user/edit.
type UpdateUserRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ErrorResponse is the uniform error body rendered on every failure path.
// Exception carries the error-kind name, never an internal error string.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Exception  string    `json:"exception"`
	Message    string    `json:"message"`
	Time       time.Time `json:"time"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(statusCode int, exception, message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: statusCode,
		Exception:  exception,
		Message:    message,
		Time:       time.Now().UTC(),
	}
}
