// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options selects log destinations and verbosity.
type Options struct {
	Verbose bool
	// Level overrides Verbose when set (trace, debug, info, warn, error).
	Level string
	// File, when set, receives JSON log lines rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Console is the human-readable sink; defaults to stderr.
	Console io.Writer
}

// Setup installs the global logger and returns a closer for the file sink.
func Setup(o Options) io.Closer {
	zerolog.TimeFieldFormat = time.RFC3339
	console := o.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}}

	var closer io.Closer = nopCloser{}
	if strings.TrimSpace(o.File) != "" {
		lj := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    orDefault(o.MaxSizeMB, 10),
			MaxBackups: orDefault(o.MaxBackups, 3),
			MaxAge:     orDefault(o.MaxAgeDays, 28),
		}
		writers = append(writers, lj)
		closer = lj
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level(o))
	return closer
}

func level(o Options) zerolog.Level {
	if s := strings.TrimSpace(o.Level); s != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
			return lvl
		}
	}
	if o.Verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
