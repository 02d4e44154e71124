// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle service.
//
// # Available Jobs
//
// 1. CacheRefreshJob - Re-syncs the lifecycle coordinator's order cache
// from the authoritative store so local policy checks see changes made by
// other processes.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(coordinator, repository, "*/30 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The refresh job logs failures and retries on the next scheduled run;
// a failed sweep never touches the coordinator's cache.
package jobs
