package recordstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"go.uber.org/zap"
)

// FileStore keeps the record as a single msgpack file
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates the containing directory and returns a store for path
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the record file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record file, creating it when absent
func (s *FileStore) Load() (*domain.Record, error) {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}

	rec, err := Decode(data)
	if err != nil {
		s.logger.Info("record file empty or unreadable, starting with empty history",
			zap.String("path", s.path),
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return domain.NewRecord(), nil
	}

	s.logger.Debug("loaded record",
		zap.String("path", s.path),
		zap.Stringer("state", rec.State),
		zap.Int("past", len(rec.Past)))
	return rec, nil
}

// Save truncates the record file and rewrites it from offset 0
func (s *FileStore) Save(rec *domain.Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate record file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek record file: %w", err)
	}

	n, err := f.Write(data)
	if err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("write record file: %w", io.ErrShortWrite)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync record file: %w", err)
	}

	s.logger.Debug("saved record", zap.String("path", s.path), zap.Int("bytes", n))
	return f.Close()
}

// Close is a no-op; the file is opened per operation
func (s *FileStore) Close() error {
	return nil
}
