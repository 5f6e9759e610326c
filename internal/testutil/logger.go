package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a text logger writing to the returned buffer.
// Debug records are kept so tests can assert on the controller's load and
// logo traces as well as warnings.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}
