package auth

import (
	"context"

	"github.com/mmynk/shophub/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping credential schemes without changing the
// service layer code.
type Authenticator interface {
	// Register validates the signup form and creates a new user account.
	// Returns ValidationErrors for a malformed form and ErrEmailExists when the
	// email is already registered.
	Register(ctx context.Context, in SignupInput) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns ErrUserNotFound for an unknown email and ErrInvalidPassword when the
	// credential does not match.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
