// File: internal/user/model.go
package user

import (
	"time"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/shared"

	"github.com/google/uuid"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel
	Email        *string             `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber  *string             `gorm:"type:varchar(32);uniqueIndex"`
	Name         *string             `gorm:"type:varchar(100)"`
	PasswordHash *string             `gorm:"column:password_hash;type:varchar(255)"`
	Role         domain.Role         `gorm:"type:varchar(16);not null;default:'USER'"`
	Provider     domain.AuthProvider `gorm:"type:varchar(16);not null;default:'LOCAL'"`
	UpdatedAt    time.Time

	// UsageLogCount is filled only by listing queries.
	UsageLogCount int64 `gorm:"column:usage_log_count;->;-:migration"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phoneNumber" binding:"required_without=Email,omitempty,min=1,max=32"`
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Password    string  `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" binding:"required_without=Email"`
	Password    string  `json:"password" binding:"required"`
}

// UpdateRoleRequest is the body of PATCH /admin/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=USER ADMIN"`
}

// ToPublic converts a User into the register/login view.
func ToPublic(u *User) shared.UserResponse {
	return shared.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
	}
}

// CountView mirrors the {"usageLogs": n} relation counter on admin listings.
type CountView struct {
	UsageLogs int64 `json:"usageLogs"`
}

// AdminUserResponse is one row of GET /admin/users.
type AdminUserResponse struct {
	ID          uuid.UUID           `json:"id"`
	Email       *string             `json:"email"`
	PhoneNumber *string             `json:"phoneNumber"`
	Name        *string             `json:"name"`
	Role        domain.Role         `json:"role"`
	Provider    domain.AuthProvider `json:"provider"`
	CreatedAt   time.Time           `json:"createdAt"`
	Count       CountView           `json:"_count"`
}

// ToAdminResponse converts a listed User.
func ToAdminResponse(u *User) AdminUserResponse {
	return AdminUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
		Role:        u.Role,
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
		Count:       CountView{UsageLogs: u.UsageLogCount},
	}
}

// RoleResponse is returned by the role update.
type RoleResponse struct {
	ID    uuid.UUID   `json:"id"`
	Email *string     `json:"email"`
	Role  domain.Role `json:"role"`
}

// ProfileResponse is returned by GET /auth/me.
type ProfileResponse struct {
	ID          uuid.UUID           `json:"id"`
	Email       *string             `json:"email"`
	PhoneNumber *string             `json:"phoneNumber"`
	Name        *string             `json:"name"`
	Role        domain.Role         `json:"role"`
	Provider    domain.AuthProvider `json:"provider"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ToProfile converts a User into the caller's own view.
func ToProfile(u *User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
		Role:        u.Role,
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
	}
}
