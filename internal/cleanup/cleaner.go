package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/catalogue-browser/internal/session"
)

// Cleaner periodically evicts idle browser sessions
type Cleaner struct {
	sweeper  session.Sweeper
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(sweeper session.Sweeper, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("session cleanup worker started", "interval", c.interval)

	// Run immediately on start
	c.cleanup(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup runs a single sweep and returns how many sessions were evicted
func (c *Cleaner) cleanup(ctx context.Context) int {
	removed, err := c.sweeper.Sweep(ctx)
	if err != nil {
		slog.Error("failed to sweep sessions", "error", err)
		return 0
	}

	if removed > 0 {
		slog.Info("expired sessions removed", "count", removed)
	} else {
		slog.Debug("no expired sessions found")
	}
	return removed
}
