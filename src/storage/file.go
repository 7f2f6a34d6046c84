package storage

import (
	"os"

	"portfolio-observer/src/logger"
)

// -----------------------------------------------------------------------------

// FileSlot stores the daily cache blob in a single file. This is the default
// backend: no daemon, no schema, survives process restarts.
type FileSlot struct {
	Path   string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewFileSlot(path string, log *logger.Logger) *FileSlot {
	return &FileSlot{Path: path, Logger: log}
}

// -----------------------------------------------------------------------------

func (f *FileSlot) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// -----------------------------------------------------------------------------

func (f *FileSlot) Write(payload string) error {
	return os.WriteFile(f.Path, []byte(payload), 0644)
}

// -----------------------------------------------------------------------------

func (f *FileSlot) Close() error {
	return nil
}
