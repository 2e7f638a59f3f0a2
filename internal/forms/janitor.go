package forms

import (
	"context"
	"time"

	"formlab-backend/internal/shared/telemetry"
)

// Janitor periodically removes expired drafts. It is tied to a context so
// shutdown cancels the schedule instead of leaving a dangling timer.
type Janitor struct {
	Svc      *Service
	Interval time.Duration
}

// Run blocks until ctx is cancelled, running a cleanup pass every interval.
func (j *Janitor) Run(ctx context.Context) {
	interval := j.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := j.Svc.CleanupExpired(ctx); err != nil && ctx.Err() == nil {
				telemetry.Error("drafts.cleanup.failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
