// Package logging builds the application's slog loggers.
//
// Both binaries call NewLogger at startup and install the result as the
// process default; NewTextLogger exists for local runs where JSON lines
// are hard to read. The minimum level is taken from the LOG_LEVEL
// environment variable.
//
// Request handlers attach the request ID from the context before
// logging:
//
//	logger := logging.WithRequestID(ctx, h.Logger)
//	logger.Info("Paginated response", slog.Int("page", page))
//
// so every line of a request shares one request_id field.
package logging
