package log

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/rogerio-castellano/inventory-keeper/internal/config"
)

// NewSlogLogger creates a logger writing to w with the given configuration and makes
// it the default logger. Text output is colored only when w is a terminal.
func NewSlogLogger(cfg config.Log, w io.Writer) *slog.Logger {
	var handler slog.Handler

	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && isatty.IsTerminal(f.Fd())
}
