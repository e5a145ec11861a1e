// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmailOrPhone(ctx context.Context, email, phoneNumber *string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*User, error)
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func normalizeEmail(email *string) {
	if email != nil {
		*email = strings.ToLower(strings.TrimSpace(*email))
	}
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	normalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrConflict.WithMessage("User already exists")
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found")
		}
		return nil, fmt.Errorf("finding user %s: %w", id, err)
	}
	return &userModel, nil
}

// FindByEmailOrPhone returns the first user matching any of the given identifiers.
// Nil identifiers are ignored; with both nil it reports not found.
func (r *gormRepository) FindByEmailOrPhone(ctx context.Context, email, phoneNumber *string) (*User, error) {
	var conds []string
	var args []interface{}
	if email != nil && strings.TrimSpace(*email) != "" {
		conds = append(conds, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*email)))
	}
	if phoneNumber != nil && strings.TrimSpace(*phoneNumber) != "" {
		conds = append(conds, "phone_number = ?")
		args = append(args, strings.TrimSpace(*phoneNumber))
	}
	if len(conds) == 0 {
		return nil, common.ErrNotFound.WithMessage("User not found")
	}

	var userModel User
	err := r.db.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		Order("created_at ASC").
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("User not found")
		}
		return nil, fmt.Errorf("finding user by email/phone: %w", err)
	}
	return &userModel, nil
}

// List returns one page of users, newest first, each with its usage log count.
func (r *gormRepository) List(ctx context.Context, offset, limit int) ([]User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	usageCount := r.db.Table("usage_logs").
		Select("COUNT(*)").
		Where("usage_logs.user_id = users.id")

	var users []User
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Select("users.*, (?) AS usage_log_count", usageCount).
		Order("users.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	return users, total, nil
}

// UpdateRole sets the role of an existing user.
func (r *gormRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*User, error) {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return nil, fmt.Errorf("updating role of user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithMessage("User not found")
	}
	return r.FindByID(ctx, id)
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return total, nil
}
