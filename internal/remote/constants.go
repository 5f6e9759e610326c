package remote

import "time"

const (
	defaultBaseURL     = "http://localhost:4000/teams"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	headerAdminPassword = "X-Admin-Password"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
)

// Operation names used in errors, logs and metrics.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpSwap   = "swap"
)
