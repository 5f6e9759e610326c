package remote

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/vmhl-standings/internal/logging"
)

// logWithOp emits a log entry if logger is non-nil and always includes the operation name.
func logWithOp(ctx context.Context, logger *slog.Logger, level slog.Level, op string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldOp, op))
	logger.Log(ctx, level, msg, args...)
}
