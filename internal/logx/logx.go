// Package logx configures the process-wide slog logger. Output goes to
// stderr so the TUI and piped table output stay clean.
package logx

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var once sync.Once

// EnvLogLevel selects the level: debug, info, warn, error. Default warn.
const EnvLogLevel = "QBUF_LOG"

func Init() {
	once.Do(func() {
		level := slog.LevelWarn
		switch strings.ToLower(os.Getenv(EnvLogLevel)) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}

		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	})
}
