package observability

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arloliu/galacticbuf/errs"
)

// InitLogger builds the process logger on stdout and installs it as log.Logger.
func InitLogger(app, level, format string) (zerolog.Logger, error) {
	logger, err := NewLogger(os.Stdout, app, level, format)
	if err != nil {
		return zerolog.Nop(), err
	}
	log.Logger = logger

	return logger, nil
}

// NewLogger builds a logger writing to out. format is "console" or "json".
func NewLogger(out io.Writer, app, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log level %q", errs.ErrInvalidConfig, level)
	}

	var w io.Writer
	switch format {
	case "", "console":
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	case "json":
		w = out
	default:
		return zerolog.Nop(), fmt.Errorf("%w: log format %q", errs.ErrInvalidConfig, format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", app).Logger(), nil
}
