// Package logging provides structured logging for the forms engine.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the engine. Logging is silent unless a level is
// requested, and it always writes to a file: the terminal is owned by the
// running form.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (input events, registrar rewiring)
//   - Info: Normal operations (field lifecycle, session start and end)
//   - Warn: Non-fatal issues (rejected hook operations)
//   - Error: Fatal issues (terminal failures, hook errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Session started",
//	    zap.String("session", id),
//	    zap.Int("fields", n),
//	)
//
// # Specialized Logging
//
// Field lifecycle:
//
//	logging.LogFieldTransition(name, "mount")
//	logging.LogFieldTransition(name, "close", zap.String("result", res))
//
// Input routing:
//
//	logging.LogEvent(name, ev.String(), gated)
//
// Sequence rewiring:
//
//	logging.LogRegistrarOp("branch", uint64(running), zap.Int("count", 2))
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFile("debug", "/tmp/form.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// IMPROMPTU_LOG_LEVEL and IMPROMPTU_LOG_FILE provide the same settings
// from the environment.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically. Initialize and SetLogger are not,
// and belong to program startup.
package logging
