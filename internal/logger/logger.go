package logger

import (
    "io"
    "os"
    "time"

    "github.com/HamedShams/tracker-report/internal/config"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

func New(cfg config.Config) zerolog.Logger {
    return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds the process logger on top of w. Unknown levels fall back to info.
func NewWithWriter(cfg config.Config, w io.Writer) zerolog.Logger {
    level, err := zerolog.ParseLevel(cfg.Log.Level)
    if err != nil || level == zerolog.NoLevel {
        level = zerolog.InfoLevel
    }
    if cfg.App.Env == "dev" {
        w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
    } else {
        zerolog.TimeFieldFormat = time.RFC3339
    }
    logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
    log.Logger = logger
    return logger
}
