package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second

	// requestBodyLimit caps JSON bodies; inline data URL logos dominate the size.
	requestBodyLimit = 8 << 20
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
