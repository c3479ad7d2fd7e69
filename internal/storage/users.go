package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/shophub/internal/models"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Users is the persisted user collection, kept as one JSON array under KeyUsers.
// Writes are serialized so concurrent signups neither lose records nor register
// the same email twice.
type Users struct {
	mu     sync.Mutex
	store  Store
	logger *slog.Logger
}

// NewUsers returns the user collection backed by store.
func NewUsers(store Store, logger *slog.Logger) *Users {
	if logger == nil {
		logger = slog.Default()
	}
	return &Users{store: store, logger: logger}
}

// ListUsers returns every stored user in signup order.
// A corrupt collection is discarded and reads as empty.
func (u *Users) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := LoadJSON(ctx, u.store, u.logger, KeyUsers, &users, nil); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByEmail retrieves a user by their email address.
// Returns nil, nil when no user matches.
func (u *Users) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := u.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by their ID.
// Returns nil, nil when no user matches.
func (u *Users) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := u.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// CreateUser appends user to the collection.
// The ID and CreatedAt fields are generated when unset.
// Returns ErrDuplicateEmail when a user with the same email already exists.
func (u *Users) CreateUser(ctx context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	for i := range users {
		if users[i].Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	users = append(users, *user)

	if err := SaveJSON(ctx, u.store, KeyUsers, users); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
