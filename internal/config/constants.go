package config

import "time"

const (
	envRemoteBaseURL = "REMOTE_BASE_URL"
	envRemoteSecret  = "REMOTE_ADMIN_SECRET"
	envAdminPassword = "ADMIN_PASSWORD"
	envRemoteTimeout = "REMOTE_TIMEOUT"
	envAtomicSwap    = "REMOTE_ATOMIC_SWAP"
	envPort          = "PORT"
	envStoreSecret   = "STORE_ADMIN_SECRET"
	envDatabaseURL   = "DATABASE_URL"
	envMetricsOn     = "METRICS_ENABLED"
	envMetricsPort   = "METRICS_PORT"
	envConsoleStats  = "CONSOLE_METRICS_PORT"

	defaultPort           = "4000"
	defaultRemoteBaseURL  = "http://localhost:4000/teams"
	defaultRemoteTimeout  = 10 * time.Second
	defaultConnectTimeout = 30 * time.Second
	defaultMetricsPort    = "9090"
)
