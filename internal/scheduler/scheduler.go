package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crucial707/student-records/internal/metrics"
	"github.com/robfig/cron/v3"
)

// Counter reports how many records a store holds.
type Counter interface {
	Count() int
}

// Start runs job on the cron schedule spec (standard five-field or descriptors such as
// "@every 1m") until ctx is cancelled. The returned cron is already running.
func Start(ctx context.Context, spec string, job func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("scheduler: invalid schedule %q: %w", spec, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		// Wait for a running job to finish before returning.
		<-c.Stop().Done()
		slog.Info("scheduler stopped")
	}()
	return c, nil
}

// StoreStats returns a job that refreshes the students gauge and logs the current count.
func StoreStats(store Counter) func() {
	return func() {
		n := store.Count()
		metrics.SetStudentsStored(n)
		slog.Info("store stats", "students", n)
	}
}
