package config

import "time"

// ServerConfig controls the remote store service.
type ServerConfig struct {
	Port           string        `env:"PORT" env-default:"4000"`
	AdminSecret    string        `env:"STORE_ADMIN_SECRET" env-default:"vmhl2000" env-description:"expected X-Admin-Password value"`
	DatabaseURL    string        `env:"DATABASE_URL" env-description:"postgres DSN; empty selects the in-memory repository"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" env-default:"true"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"30s" env-description:"how long to retry the initial database connection"`
	SeedFixtures   bool          `env:"SEED_FIXTURES" env-default:"true" env-description:"seed sample teams into the in-memory repository"`
}

func (s *ServerConfig) normalize() {
	if s.Port == "" {
		s.Port = defaultPort
	}
	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = defaultConnectTimeout
	}
}

// UsesDatabase reports whether a Postgres DSN was supplied.
func (s ServerConfig) UsesDatabase() bool {
	return s.DatabaseURL != ""
}
