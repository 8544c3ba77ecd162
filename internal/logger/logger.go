package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/investbuddy/circles-api/internal/config"
)

// NewLogger creates a JSON slog.Logger at the configured level. Debug level
// additionally records source code locations.
func NewLogger(cfg *config.LoggingConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	log := slog.New(handler)
	log.Info("logger initialized", "level", level)

	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
