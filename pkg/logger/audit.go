package logger

import (
	"context"
	"log/slog"
	"time"
)

// SubmissionEvent describes the outcome of one submission for the audit
// trail. Outcome is one of "correct", "incorrect", "validator_error",
// "store_error".
type SubmissionEvent struct {
	ProblemID int
	UserName  string
	AttemptID string
	Outcome   string
}

// AuditLogger provides audit logging functionality
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogSubmission logs one submission outcome
func (al *AuditLogger) LogSubmission(event SubmissionEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "submission"),
		slog.Int("problem_id", event.ProblemID),
		slog.String("user_name", event.UserName),
		slog.String("outcome", event.Outcome),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if event.AttemptID != "" {
		attrs = append(attrs, slog.String("attempt_id", event.AttemptID))
	}

	switch event.Outcome {
	case "validator_error", "store_error":
		al.logger.LogAttrs(context.Background(), slog.LevelWarn, "audit", attrs...)
	default:
		al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
	}
}
