package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"` // "console" or "json"
	Output string `json:"output" mapstructure:"output"` // "stdout", "stderr" or a file path
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// New builds a zerolog logger from cfg. The returned closer releases the
// output file, if one was opened.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var output io.Writer
	var closer io.Closer = io.NopCloser(nil)
	switch cfg.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output, closer = file, file
	}

	return newLogger(output, cfg.Format, level), closer, nil
}

func newLogger(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Adapter lets a zerolog logger receive reset progress.
type Adapter struct {
	log zerolog.Logger
}

func NewAdapter(log zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) Info(msg string, args ...any) {
	a.log.Info().Fields(args).Msg(msg)
}

func (a *Adapter) Warn(msg string, args ...any) {
	a.log.Warn().Fields(args).Msg(msg)
}

func (a *Adapter) Error(msg string, args ...any) {
	a.log.Error().Fields(args).Msg(msg)
}
