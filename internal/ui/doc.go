// Package ui provides terminal output components for the invadm CLI.
//
// This package uses Lipgloss to render polished terminal output for the
// one-shot subcommands (list, add, delete, ...). Unlike the interactive
// dashboard, these components follow a "run once and exit" pattern - they
// render output compellingly but don't require user interaction.
//
// The package provides three main component types:
//
//   - Header: Command banner showing operation name and parameters
//   - Result: Success/failure boxes with styled information
//   - Confirm: A y/N prompt for destructive operations
//
// # Logging Integration
//
// This package expects logging to be controlled via the INVADM_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set INVADM_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
package ui
