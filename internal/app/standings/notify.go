package standings

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// Level distinguishes success toasts from destructive ones.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a user-visible message raised at the end of an operation.
type Notification struct {
	Title   string
	Message string
	Level   Level
	Err     error
}

// Notifier delivers notifications to whatever presents them.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// denyAll is used when no confirmer is wired; destructive actions never proceed.
type denyAll struct{}

func (denyAll) Confirm(context.Context, string) bool { return false }

// logNotifier writes notifications to the structured log.
type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Notify(ctx context.Context, note Notification) {
	logger := logging.FromContext(ctx, n.logger)
	if note.Level == LevelError {
		logging.Warn(logger, note.Message, slog.String("title", note.Title))
		return
	}
	logging.Info(logger, note.Message, slog.String("title", note.Title))
}

const (
	titleSuccess = "Success"
	titleError   = "Error"
	titleLogout  = "Logged out"

	msgLoginOK      = "Admin mode enabled"
	msgLoginFailed  = "Wrong password"
	msgLogout       = "Admin mode disabled"
	msgLoadFailed   = "Failed to load teams"
	msgCreated      = "Team added"
	msgCreateFailed = "Failed to add team"
	msgUpdated      = "Team updated"
	msgUpdateFailed = "Failed to update team"
	msgDeleted      = "Team deleted"
	msgDeleteFailed = "Failed to delete team"
	msgMoveFailed   = "Failed to move team"
)

func success(msg string) Notification {
	return Notification{Title: titleSuccess, Message: msg, Level: LevelInfo}
}

func failure(msg string, err error) Notification {
	return Notification{Title: titleError, Message: msg, Level: LevelError, Err: err}
}
