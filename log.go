package ui

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// uiLogLevel controls the log level for runtime debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var uiLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		uiLogLevel.Set(slog.LevelDebug)
	} else {
		uiLogLevel.Set(slog.LevelInfo)
	}
}

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: uiLogLevel})))
}

// SetLogger replaces the package logger. Passing nil restores the default
// stderr text logger governed by SetVerbose.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: uiLogLevel}))
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
