// Package storage defines the durable persistence contract for the counter
// collection.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the backing store cannot be opened or
// reached. Callers surface it to the user; it never stops the in-memory
// counters.
var ErrUnavailable = errors.New("storage unavailable")

// Gateway loads and saves the full ordered counter list. SaveAll is
// all-or-nothing: an interrupted write must leave the previously stored
// contents intact, never a mix of old and new values.
type Gateway interface {
	Load(ctx context.Context) ([]int64, error)
	SaveAll(ctx context.Context, values []int64) error
	Ping(ctx context.Context) error
}

// Unavailable is a Gateway standing in for a backing store that could not be
// opened at startup. Every operation fails with ErrUnavailable, while the
// in-memory counters keep running.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Load(ctx context.Context) ([]int64, error) {
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, u.Reason)
}

func (u Unavailable) SaveAll(ctx context.Context, values []int64) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Reason)
}

func (u Unavailable) Ping(ctx context.Context) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Reason)
}
