package session

import (
	"context"
	"errors"

	"github.com/terra-clan/catalogue-browser/internal/navigation"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

// Store persists navigation snapshots for the lifetime of a browser session
type Store interface {
	Get(ctx context.Context, id string) (navigation.Snapshot, error)
	Save(ctx context.Context, id string, snap navigation.Snapshot) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Sweeper is implemented by stores that need idle sessions evicted periodically
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}
