// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
)

// RepoLogger emits structured audit lines for repository mutations.
type RepoLogger struct {
	table  string
	logger *slog.Logger
}

// NewRepoLogger creates a RepoLogger for table. A nil logger falls back to slog.Default.
func NewRepoLogger(table string, logger *slog.Logger) *RepoLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepoLogger{table: table, logger: logger}
}

func (l *RepoLogger) log(ctx context.Context, op string, id uint, attrs []any) {
	base := []any{
		slog.String("table", l.table),
		slog.String("operation", op),
		slog.Uint64("id", uint64(id)),
	}
	if tid := ExtractTraceID(ctx); tid != "" {
		base = append(base, slog.String("span_trace_id", tid))
	}
	l.logger.InfoContext(ctx, "repository "+op, append(base, attrs...)...)
}

// LogCreate logs an insert.
func (l *RepoLogger) LogCreate(ctx context.Context, id uint, attrs ...any) {
	l.log(ctx, "create", id, attrs)
}

// LogUpdate logs an update.
func (l *RepoLogger) LogUpdate(ctx context.Context, id uint, attrs ...any) {
	l.log(ctx, "update", id, attrs)
}

// LogDelete logs a delete, including cascades.
func (l *RepoLogger) LogDelete(ctx context.Context, id uint, attrs ...any) {
	l.log(ctx, "delete", id, attrs)
}

// LogError logs a failed repository operation.
func (l *RepoLogger) LogError(ctx context.Context, op string, err error) {
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.table),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}
