package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/sillypears/rivals2-log-parser/internal/config"
)

// New builds the process logger: console output always, plus a log file when
// the config names one. The returned closer is nil when no file is open.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	writers := []io.Writer{console}
	var closer io.Closer

	if cfg.File != "" {
		path := filepath.Join(cfg.Dir, cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nil, err
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writers = append(writers, f)
		closer = f
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	return log, closer, nil
}
