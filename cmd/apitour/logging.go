package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/sagarc03/apitour/config"
)

// setupLogging installs the process logger on stdout and routes the std log
// package (net/http server errors) through it.
func setupLogging(cfg *config.Config) {
	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(logger.Handler(), slog.LevelWarn).Writer())
}

// newLogger writes JSON records with a UTC "ts" key in production and tinted
// text elsewhere. Every record carries the service name.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := logLevel(cfg.Log.Level, cfg.IsProduction())

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: utcTimestamp,
		})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: "15:04:05.000",
		})
	}

	return slog.New(h).With("service", "apitour")
}

func utcTimestamp(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

// logLevel parses s, falling back to info in production and debug otherwise.
func logLevel(s string, prod bool) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}

	var level slog.Level
	if s != "" && level.UnmarshalText([]byte(s)) == nil {
		return level
	}
	if prod {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
