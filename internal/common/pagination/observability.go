package pagination

import (
	"log/slog"
	"time"
)

// LogResponse emits the one-line summary for a served page. Handlers
// call it instead of assembling the field list themselves so the log
// shape stays identical across list endpoints.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("Paginated response",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", returnedCount),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Int("status", statusCode))
}

// LogError logs a failed pagination request. errorType matches the
// label vocabulary of RecordError, so log lines and the errors counter
// slice the same way.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("Pagination error",
		slog.String("request_id", requestID),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Any("error", err),
		slog.String("error_type", errorType))
}
