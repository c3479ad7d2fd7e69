// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Keys under which ShopHub state is persisted.
const (
	KeyUsers   = "shopHubUsers"
	KeySession = "currentUser"
	KeyCart    = "shopHubCart"
)

// ErrCorrupt marks a persisted value that could not be decoded.
// LoadJSON wraps it in the cause it logs; corrupt values are removed and
// reported as Discarded.
var ErrCorrupt = errors.New("corrupt persisted value")

// Store defines the key-value contract for persisted client state.
// There are no transactional guarantees: the last writer wins.
// This abstraction allows swapping storage backends (SQLite, Redis)
// without changing the service layer.
type Store interface {
	// Get returns the value stored under key.
	// ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// SaveJSON encodes value as JSON and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadState reports what LoadJSON found under a key.
type LoadState int

const (
	Absent    LoadState = iota // no value stored
	Loaded                     // value decoded into dest
	Discarded                  // value was corrupt and has been removed
)

// LoadJSON decodes the value stored under key into dest.
//
// A value that does not decode, or that valid rejects, is logged, removed from
// the store and reported as Discarded; dest is left untouched. Only read and
// remove failures of the store itself are returned as errors.
func LoadJSON[T any](ctx context.Context, s Store, logger *slog.Logger, key string, dest *T, valid func(*T) error) (LoadState, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return Absent, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return Absent, nil
	}

	var decoded T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Discarded, Discard(ctx, s, logger, key, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}
	if valid != nil {
		if err := valid(&decoded); err != nil {
			return Discarded, Discard(ctx, s, logger, key, fmt.Errorf("%w: %v", ErrCorrupt, err))
		}
	}

	*dest = decoded
	return Loaded, nil
}

// Discard removes a corrupt value after logging why it was rejected.
func Discard(ctx context.Context, s Store, logger *slog.Logger, key string, cause error) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("Discarding corrupt persisted value", "key", key, "error", cause)
	if err := s.Remove(ctx, key); err != nil {
		return fmt.Errorf("failed to remove corrupt %s: %w", key, err)
	}
	return nil
}
