package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// These constants are the string representation of the log levels
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
	Disabled   = "disabled"
)

var (
	once sync.Once
	// silent until Init runs, so packages can log from tests
	logger = zerolog.Nop()
)

// Config holds the configuration for the logger
type Config struct {
	Level  string
	Output string // "stdout", "stderr", or file path
	Pretty bool   // Enable pretty logging for development
}

// Init initializes the global logger. Only the first call has an effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		level, parseErr := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if parseErr != nil || cfg.Level == "" {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var output io.Writer
		output, err = openOutput(cfg.Output)
		if err != nil {
			output = os.Stdout
		}

		if cfg.Pretty {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: "2006-01-02 15:04:05",
			}
		}

		logger = zerolog.New(output).With().
			Timestamp().
			Caller().
			Logger()

		zerolog.DefaultContextLogger = &logger
	})
	return err
}

func openOutput(target string) (io.Writer, error) {
	switch target {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	dir := filepath.Dir(target)
	if dir != "." && dir != string(filepath.Separator) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// Get returns the logger instance
func Get() *zerolog.Logger {
	return &logger
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event {
	return logger.Debug()
}

func Info() *zerolog.Event {
	return logger.Info()
}

func Warn() *zerolog.Event {
	return logger.Warn()
}

func Error() *zerolog.Event {
	return logger.Error()
}

func Fatal() *zerolog.Event {
	return logger.Fatal()
}
