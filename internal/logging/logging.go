// Package logging installs the process-wide slog handler
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/dealflow/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// DefaultPath returns ~/.dealflow/logs/dealflow.log
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".dealflow", "logs", "dealflow.log"), nil
}

// Init initializes the logging system from cfg. Logs go to
// ~/.dealflow/logs/dealflow.log unless cfg.File names another file, or "-"
// for stderr. Uses text format for human readability. The returned closer
// releases the log file.
func Init(cfg config.LogConfig) (io.Closer, error) {
	out, err := openOutput(cfg.File)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same sink
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return out, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stderr}, nil
	}

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	// Open log file in append mode
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
