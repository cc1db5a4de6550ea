package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
	"philcali.me/movies/internal/config"
)

func level(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func writer(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    100,
		MaxAge:     14,
		MaxBackups: 3,
		Compress:   true,
		LocalTime:  true,
	}
}

func NewLogger(cfg config.LogConfig) *slog.Logger {
	return NewLoggerWithWriter(cfg, writer(cfg))
}

func NewLoggerWithWriter(cfg config.LogConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level(cfg.Level),
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}
