package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LIMSONGJIN/metabank-api/internal/common"
	"github.com/LIMSONGJIN/metabank-api/internal/domain"
	"github.com/LIMSONGJIN/metabank-api/internal/platform/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dummyHash is compared against when no account matches so that unknown
// identifiers take as long as wrong passwords.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service defines user business operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, req LoginRequest) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, page, limit int) ([]User, common.Pagination, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger.Named("user"),
	}
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// Register creates a LOCAL account with role USER.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := blankToNil(req.Email)
	phone := blankToNil(req.PhoneNumber)
	if email == nil && phone == nil {
		return nil, common.ErrValidation.WithMessage("Either email or phoneNumber is required")
	}

	_, err := s.repo.FindByEmailOrPhone(ctx, email, phone)
	if err == nil {
		return nil, common.ErrConflict.WithMessage("User already exists")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, err
	}

	u := &User{
		Email:        email,
		PhoneNumber:  phone,
		Name:         blankToNil(req.Name),
		PasswordHash: &hashed,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if _, ok := common.IsAPIError(err); !ok {
			s.logger.Error("Failed to create user in repository", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", u.ID.String()))
	return u, nil
}

// Authenticate verifies credentials and returns the matching account.
// Every failure is the same 401 so callers cannot probe which identifiers exist.
func (s *ServiceImplementation) Authenticate(ctx context.Context, req LoginRequest) (*User, error) {
	invalid := common.ErrUnauthorized.WithMessage("Invalid credentials")

	u, err := s.repo.FindByEmailOrPhone(ctx, blankToNil(req.Email), blankToNil(req.PhoneNumber))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			crypto.CheckPasswordHash(req.Password, dummyHash)
			return nil, invalid
		}
		s.logger.Error("Error finding user during login", zap.Error(err))
		return nil, err
	}

	if u.PasswordHash == nil || *u.PasswordHash == "" {
		s.logger.Info("Password login attempted on account without password", zap.String("userID", u.ID.String()))
		crypto.CheckPasswordHash(req.Password, dummyHash)
		return nil, invalid
	}
	if !crypto.CheckPasswordHash(req.Password, *u.PasswordHash) {
		return nil, invalid
	}
	return u, nil
}

func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of users for the admin console.
func (s *ServiceImplementation) List(ctx context.Context, page, limit int) ([]User, common.Pagination, error) {
	page, limit = common.NormalizePage(page, limit)
	users, total, err := s.repo.List(ctx, common.Offset(page, limit), limit)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	return users, common.NewPagination(total, page, limit), nil
}

func (s *ServiceImplementation) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*User, error) {
	u, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User role updated", zap.String("userID", id.String()), zap.String("role", string(role)))
	return u, nil
}

func (s *ServiceImplementation) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
