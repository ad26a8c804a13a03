package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level slog.Level

	// File enables a rotated JSON log file in addition to the console.
	File string

	Output io.Writer
}

// FromEnvironment reads DEBUG and LOG_FILE.
func FromEnvironment() Config {
	cfg := Config{
		Level: slog.LevelInfo,
		File:  os.Getenv("LOG_FILE"),
	}

	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}

	return cfg
}

func New(cfg Config) *slog.Logger {
	output := cfg.Output

	if output == nil {
		output = os.Stderr
	}

	console := tint.NewHandler(output, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: time.Kitchen,
	})

	if cfg.File == "" {
		return slog.New(console)
	}

	file := slog.NewJSONHandler(&lumberjack.Logger{
		Filename: cfg.File,

		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}, &slog.HandlerOptions{
		Level: cfg.Level,
	})

	return slog.New(slog.NewMultiHandler(console, file))
}
