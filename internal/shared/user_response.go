// File: internal/shared/user_response.go
package shared

import (
	"github.com/google/uuid"
)

// UserResponse is the public view of an account returned by /auth.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       *string   `json:"email"`
	PhoneNumber *string   `json:"phoneNumber"`
	Name        *string   `json:"name"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
