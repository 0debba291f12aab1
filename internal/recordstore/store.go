// Package recordstore persists the tracker record between invocations.
//
// A store never fails on unreadable content: an empty, truncated or
// otherwise undecodable record is replaced by domain.NewRecord. Errors
// returned by a store are environment failures (directories, files,
// database handles) the tool cannot work without.
package recordstore

import (
	"fmt"
	"path/filepath"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"go.uber.org/zap"
)

// Supported backends
const (
	BackendMsgpack = "msgpack"
	BackendSQLite  = "sqlite"
)

// Store loads and saves the whole record
type Store interface {
	Load() (*domain.Record, error)
	Save(rec *domain.Record) error
	Path() string
	Close() error
}

// FileName returns the record file name used by a backend
func FileName(backend string) string {
	if backend == BackendSQLite {
		return "timesheets.db"
	}
	return "timesheets"
}

// Open creates the store for backend inside dataDir
func Open(backend, dataDir string, logger *zap.Logger) (Store, error) {
	path := filepath.Join(dataDir, FileName(backend))
	switch backend {
	case "", BackendMsgpack:
		return NewFileStore(path, logger)
	case BackendSQLite:
		return NewSQLiteStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
