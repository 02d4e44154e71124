package jobs

import (
	"context"
	"log/slog"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/lifecycle"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// CacheRefreshJob periodically re-syncs the lifecycle coordinator's cache
// with the authoritative store. Orders changed outside this process (another
// instance, a support tool writing to the database directly) become visible
// to the coordinator's local policy check on the next sweep.
type CacheRefreshJob struct {
	coordinator *lifecycle.Coordinator
	repository  ports.OrderRepository
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewCacheRefreshJob creates a job that refreshes the coordinator cache on
// the given cron schedule (with seconds field, e.g. "*/30 * * * * *").
func NewCacheRefreshJob(
	coordinator *lifecycle.Coordinator,
	repository ports.OrderRepository,
	schedule string,
	logger *slog.Logger,
) *CacheRefreshJob {
	return &CacheRefreshJob{
		coordinator: coordinator,
		repository:  repository,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "cache_refresh_job"),
	}
}

// Start begins the periodic refresh.
func (j *CacheRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		active, err := j.repository.GetAllActive(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cache refresh job failed to list active orders", "error", err)
			return
		}

		// ApplyAuthoritative drops stale records itself, so a sweep racing
		// an in-flight status change can never roll the cache back.
		for _, activeOrder := range active {
			j.coordinator.ApplyAuthoritative(activeOrder)
		}

		j.logger.DebugContext(ctx, "Coordinator cache refreshed", "orders", len(active))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the refresh job.
func (j *CacheRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache refresh job stopped")
}
