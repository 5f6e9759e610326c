package config

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// ConsoleConfig controls how the admin console talks to the remote store.
type ConsoleConfig struct {
	RemoteBaseURL string        `env:"REMOTE_BASE_URL" env-default:"http://localhost:4000/teams" env-description:"remote store endpoint"`
	AdminSecret   string        `env:"REMOTE_ADMIN_SECRET" env-default:"vmhl2000" env-description:"value sent in X-Admin-Password on mutations"`
	AdminPassword string        `env:"ADMIN_PASSWORD" env-default:"vmhl2000" env-description:"password that unlocks admin mode"`
	Timeout       time.Duration `env:"REMOTE_TIMEOUT" env-default:"10s" env-description:"per-request timeout"`
	AtomicSwap    bool          `env:"REMOTE_ATOMIC_SWAP" env-default:"false" env-description:"reorder through one PATCH swap instead of two PUTs"`
	MetricsPort   string        `env:"CONSOLE_METRICS_PORT" env-description:"port for console Prometheus metrics, empty disables the listener"`
}

func (c *ConsoleConfig) normalize() {
	c.RemoteBaseURL = strings.TrimSpace(c.RemoteBaseURL)
	c.MetricsPort = strings.TrimSpace(c.MetricsPort)
	if c.RemoteBaseURL == "" {
		c.RemoteBaseURL = defaultRemoteBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultRemoteTimeout
	}
}

func (c ConsoleConfig) validate() error {
	u, err := url.Parse(c.RemoteBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(envRemoteBaseURL + " must be an absolute URL")
	}
	if c.AdminPassword == "" {
		return errors.New(envAdminPassword + " must not be empty")
	}
	return nil
}
