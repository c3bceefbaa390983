// Package logging provides structured logging for invadm.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the client. Logging is silent by default so it
// never interferes with the TUI or with curated command output; set the
// INVADM_LOG_LEVEL environment variable to "debug", "info", "warn", or
// "error" to enable it. Output goes to stderr.
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Item created",
//	    zap.Int("id", item.ID),
//	    zap.String("name", item.Name),
//	)
//
// The package also provides request/response helpers used by the API
// client:
//
//	logging.LogRequest("GET", url)
//	logging.LogResponse("GET", url, resp.StatusCode)
//
// All logging functions are safe for concurrent use.
package logging
