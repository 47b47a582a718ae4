package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/fintrackhq/fintrack/internal/dto"
)

// UserSvcFacade defines operations for managing users.
type UserSvcFacade interface {
	// CreateUser registers a new user with a bcrypt-hashed password and seeds
	// their default categories.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateOAuthUser registers (or retrieves) a user from a verified Google identity.
	CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdateUser updates mutable user fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// StoreRefreshTokenHash persists the hash and expiry of a freshly issued refresh token.
	StoreRefreshTokenHash(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error

	// ClearRefreshToken invalidates the user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string) error
}
