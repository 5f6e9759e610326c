package logging

import "log/slog"

// The helpers below tolerate a nil logger so components can run unconfigured
// in tests and small tools.

// Debug logs at debug level.
func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs at info level.
func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning.
func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs at error level, attaching err under FieldError when set.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, slog.Any(FieldError, err))
	}
	logger.Error(msg, args...)
}
