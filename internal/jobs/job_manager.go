package jobs

import (
	"fmt"
	"log/slog"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/lifecycle"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheRefreshJob *CacheRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	coordinator *lifecycle.Coordinator,
	repository ports.OrderRepository,
	refreshSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cacheRefreshJob: NewCacheRefreshJob(coordinator, repository, refreshSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cacheRefreshJob.Stop()
}
