package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once     sync.Once
	instance = zerolog.Nop()
)

// Options controls where and how much the logger writes
type Options struct {
	Debug bool
	// File is the rotated log file. Empty means console only.
	File string
	// Console defaults to os.Stderr when nil.
	Console io.Writer
}

// InitLogger initializes the logger with console output and a rotating log file
func InitLogger(opts Options) zerolog.Logger {
	once.Do(func() {
		instance = newLogger(opts)
	})

	instance.Debug().Bool("debug_mode", opts.Debug).Str("file", opts.File).Msg("Logger initialized")
	return instance
}

func newLogger(opts Options) zerolog.Logger {
	out := opts.Console
	if out == nil {
		out = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	var w io.Writer = consoleWriter
	if opts.File != "" {
		// Rotation replaces the old sync-*.log cleanup
		w = zerolog.MultiLevelWriter(consoleWriter, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     15, // days
		})
	}

	level := zerolog.InfoLevel
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Debug {
		// Include file, line and stack for troubleshooting
		ctx = zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Caller().Stack()
	}
	return ctx.Logger()
}

// SetLogger replaces the process logger. Intended for tests.
func SetLogger(l zerolog.Logger) {
	instance = l
}

// GetLogger returns the logger instance
func GetLogger() zerolog.Logger {
	return instance
}

// Helper functions for consistent logging
func Info() *zerolog.Event {
	return instance.Info()
}

func Error() *zerolog.Event {
	return instance.Error()
}

func Debug() *zerolog.Event {
	return instance.Debug()
}

func Warn() *zerolog.Event {
	return instance.Warn()
}
