// Package logging configures the zerolog logger shared by the CLI, the
// orchestrator and the GUI log pane.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no log level is configured
const DefaultLevel = "info"

// ParseLevel converts a level name into a zerolog level. An empty name
// yields DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a console logger writing to stderr and to any extra writers
// (for example the GUI log pane).
func New(level string, extra ...io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}}
	for _, w := range extra {
		if w != nil {
			writers = append(writers, zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen})
		}
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
