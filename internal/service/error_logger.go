package service

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/observability"
	"alcyxob/physio-app/internal/repository"
	"context"
	"log/slog"
	"time"
)

const defaultErrorLogTimeout = 5 * time.Second

// GenerationErrorLogger writes generation_error_logs rows. It never fails the caller:
// a row that cannot be written is reported to the process log and dropped.
type GenerationErrorLogger struct {
	repo    repository.GenerationErrorLogRepository
	metrics *observability.Metrics
	timeout time.Duration
}

func NewGenerationErrorLogger(repo repository.GenerationErrorLogRepository, metrics *observability.Metrics) *GenerationErrorLogger {
	return &GenerationErrorLogger{repo: repo, metrics: metrics, timeout: defaultErrorLogTimeout}
}

// Log records a failure for userID. The write outlives a cancelled request context.
func (l *GenerationErrorLogger) Log(ctx context.Context, code, message, userID string) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	entry := &domain.GenerationErrorLog{
		ErrorCode:    code,
		ErrorMessage: message,
		UserID:       userID,
	}
	err := l.repo.Create(writeCtx, entry)
	l.metrics.ObserveErrorLogWrite(code, err)
	if err != nil {
		slog.Error("Failed to write generation error log", "code", code, "user_id", userID, "message", message, "error", err)
		return
	}
	slog.Warn("Recorded generation error", "id", entry.ID, "code", code, "user_id", userID, "message", message)
}
