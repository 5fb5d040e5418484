// Package log captures padbridge events for later analysis.
//
// It is separate from operational logging (slog). Components that accept a
// Logger emit a machine-readable trace of device lifecycle changes, action
// set activations, queued state and remote gateway traffic.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For recording: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("session.plog")
//
//	// Both
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a concatenation of CBOR-encoded events with integer keys and
// use the .plog extension. The padbridge-log CLI views, filters, summarizes
// and exports them.
package log
