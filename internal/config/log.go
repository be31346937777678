package config

import (
	"fmt"
	"log/slog"
	"strings"
)

type Log struct {
	Level     slog.Level `mapstructure:"level"`
	Format    LogFormat  `mapstructure:"format"`
	AddSource bool       `mapstructure:"add_source"`
}

// LogFormat represents the logging format (text or JSON).
type LogFormat uint8

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// String returns the string representation of the log format.
func (f LogFormat) String() string {
	switch f {
	case LogFormatJSON:
		return "json"
	default:
		return "text"
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *LogFormat) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "text", "":
		*f = LogFormatText
	case "json":
		*f = LogFormatJSON
	default:
		return fmt.Errorf("unknown log format: %s", text)
	}
	return nil
}

func (f LogFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
