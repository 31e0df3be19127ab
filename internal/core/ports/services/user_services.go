package services

import (
	"context"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
	"github.com/contabilis/group_ledger_app/internal/dto"
)

// UserSvcFacade manages application users.
type UserSvcFacade interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUser applies a partial update to a user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// AuthenticateUser verifies email and password, returning the user on
	// success.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthSvcFacade issues access tokens for authenticated users.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed token response.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// VerifyUser confirms the user behind a token subject is known and
	// active. Used by the auth middleware for the dev header identity too.
	VerifyUser(ctx context.Context, userID string) (*domain.User, error)
}
