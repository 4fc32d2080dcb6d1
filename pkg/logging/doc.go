// Package logging provides structured logging configuration for netstub.
//
// This package wraps log/slog to provide consistent logging across the
// HTTP and TCP listeners. It supports configurable log levels/formats,
// plus two process-wide debug streams gated by environment variables:
// general server diagnostics and matcher-trace diagnostics (see debug.go).
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("listener started", "port", 4280)
//
// Components should accept a *slog.Logger in their constructor or via a
// setter. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
