package share

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often the background sweep runs.
const DefaultSweepInterval = 5 * time.Minute

// RunSweeper sweeps the store on a fixed interval until ctx is cancelled.
// Run it in a goroutine from main; Resolve also expires entries lazily, so
// the sweep is maintenance, not correctness.
func RunSweeper(ctx context.Context, store Store, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Sweep(ctx)
			if err != nil {
				log.Warn("share sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("share sweep removed expired entries", "count", n)
			}
		}
	}
}
