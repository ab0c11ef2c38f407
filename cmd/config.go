package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	// Cron expressions with a seconds field.
	AutosaveSchedule   string
	ReaperSchedule     string
	SessionIdleTimeout time.Duration
}
