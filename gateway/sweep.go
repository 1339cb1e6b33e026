package gateway

import (
	"context"
	"log/slog"
	"time"
)

// Evicter removes idle sessions. *session.Store satisfies it.
type Evicter interface {
	EvictExpired() int
}

// Sweep evicts idle sessions every interval until ctx is done.
func Sweep(ctx context.Context, store Evicter, interval time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := store.EvictExpired(); removed > 0 {
				logger.InfoContext(ctx, "cleaned up expired sessions", slog.Int("removed", removed))
			}
		}
	}
}
