package logging

import (
	"log/slog"
	"os"
	"sync"
)

// Two named debug streams, enabled by environment variable at process
// start (no teardown, matching the "global debug flags" idiom): general
// server diagnostics (connection lifecycle, matches, delays, writes) and
// matcher-specific trace (why a comparator returned false).
const (
	envGeneralDebug = "NETSTUB_DEBUG_GENERAL"
	envMatchDebug   = "NETSTUB_DEBUG_MATCH"
	envDebugFile    = "NETSTUB_DEBUG_FILE"
)

var (
	generalOnce   sync.Once
	generalLogger *slog.Logger

	matchOnce   sync.Once
	matchLogger *slog.Logger
)

// General returns the general diagnostics logger. It is a real logger at
// debug level when NETSTUB_DEBUG_GENERAL is set to a non-empty value
// other than "0" or "false", otherwise a no-op logger.
func General() *slog.Logger {
	generalOnce.Do(func() {
		generalLogger = fromEnv(envGeneralDebug)
	})
	return generalLogger
}

// Match returns the matcher-trace logger, explaining why a comparator
// returned false. Enabled by NETSTUB_DEBUG_MATCH.
func Match() *slog.Logger {
	matchOnce.Do(func() {
		matchLogger = fromEnv(envMatchDebug)
	})
	return matchLogger
}

// fromEnv builds a debug logger gated on the named environment variable.
// When NETSTUB_DEBUG_FILE also names a writable path, debug records fan
// out to both stderr and that file via MultiHandler, so a test run can
// tail a persistent trace file without losing the console stream.
func fromEnv(name string) *slog.Logger {
	if !envEnabled(name) {
		return Nop()
	}
	opts := &slog.HandlerOptions{Level: LevelDebug}
	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, opts)}
	if path := os.Getenv(envDebugFile); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			handlers = append(handlers, slog.NewTextHandler(f, opts))
		}
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(NewMultiHandler(handlers...))
}

func envEnabled(name string) bool {
	switch os.Getenv(name) {
	case "", "0", "false", "FALSE", "False":
		return false
	default:
		return true
	}
}
