package cmd

// Config carries all runtime settings, loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// CacheRefreshSchedule is a cron expression with a seconds field,
	// e.g. "*/30 * * * * *" for every 30 seconds.
	CacheRefreshSchedule string
}
