package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const filePermission = 0664

// NewFileLogger returns a logger writing structured lines to the given
// path, plus the open file so the caller can close it on shutdown.
// Log output goes to a file because stdout/stderr belong to the TUI.
func NewFileLogger(path string, level zerolog.Level) (zerolog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := zerolog.New(zerolog.SyncWriter(f)).Level(level).With().Timestamp().Logger()
	return logger, f, nil
}

// NewWriterLogger returns a logger writing to an arbitrary writer, used
// by tests
func NewWriterLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
