package service

import (
	"context"
	"time"
)

// DefaultSweepInterval is how often stale session tokens are evicted.
const DefaultSweepInterval = time.Hour

// RunSweeper drives Sweep on a fixed interval until ctx is cancelled. Sweep
// failures are logged and retried on the next tick; they never stop the loop
// and never reach a foreground caller.
func (s *Session) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Session sweeper: started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session sweeper: stopped")
			return
		case now := <-ticker.C:
			deleted, err := s.Sweep(ctx, now)
			if err != nil {
				s.logger.Error("Session sweeper: sweep failed", "error", err.Error())
				continue
			}
			if deleted > 0 {
				s.logger.Info("Session sweeper: evicted stale tokens", "count", deleted)
			}
		}
	}
}
