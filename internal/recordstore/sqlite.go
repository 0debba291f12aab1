package recordstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the record in a small SQLite database.
// Positions preserve list order; the whole record is rewritten on Save.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// NewSQLiteStore opens (and migrates) the database at dbPath
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath, logger: logger}, nil
}

// Path returns the database location
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the record. A database without a record, or with rows that
// cannot be decoded, yields the empty default record. Query and driver
// failures are returned.
func (s *SQLiteStore) Load() (*domain.Record, error) {
	rec, err := s.load()
	var decErr *decodeError
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, errNoRecord), errors.As(err, &decErr):
		s.logger.Info("record database empty or unreadable, starting with empty history",
			zap.String("path", s.path),
			zap.Error(err))
		return domain.NewRecord(), nil
	default:
		return nil, fmt.Errorf("load record: %w", err)
	}
}

var errNoRecord = errors.New("no record stored")

// decodeError marks stored content that could not be turned into a record
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "undecodable record: " + e.err.Error() }

func (e *decodeError) Unwrap() error { return e.err }

func undecodable(err error) error {
	return &decodeError{err: err}
}

func (s *SQLiteStore) load() (*domain.Record, error) {
	meta, err := s.readMeta()
	if err != nil {
		return nil, err
	}
	stateTag, ok := meta["state"]
	if !ok {
		return nil, errNoRecord
	}
	tag, err := strconv.ParseUint(stateTag, 10, 8)
	if err != nil {
		return nil, undecodable(fmt.Errorf("parse state: %w", err))
	}

	w := wireRecord{Version: meta["version"], State: uint8(tag)}

	if w.Tasks, err = s.readTasks(); err != nil {
		return nil, err
	}
	if w.Times, err = s.readTimes(); err != nil {
		return nil, err
	}
	if w.Past, err = s.readPast(); err != nil {
		return nil, err
	}
	rec, err := fromWire(w)
	if err != nil {
		return nil, undecodable(err)
	}
	return rec, nil
}

func (s *SQLiteStore) readMeta() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, undecodable(err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func (s *SQLiteStore) readTasks() ([]string, error) {
	rows, err := s.db.Query(`SELECT text FROM tasks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, undecodable(err)
		}
		tasks = append(tasks, text)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) readTimes() ([]wireBlock, error) {
	rows, err := s.db.Query(`SELECT start_unix, end_unix, finished_tasks FROM time_blocks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []wireBlock
	for rows.Next() {
		var b wireBlock
		var finished string
		if err := rows.Scan(&b.Start, &b.End, &finished); err != nil {
			return nil, undecodable(err)
		}
		if b.FinishedTasks, err = decodeList(finished); err != nil {
			return nil, undecodable(err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *SQLiteStore) readPast() ([]wirePast, error) {
	rows, err := s.db.Query(`SELECT id, date_unix, seconds, comment, finished_tasks FROM past_shifts ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var past []wirePast
	for rows.Next() {
		var p wirePast
		var id sql.NullString
		var finished string
		if err := rows.Scan(&id, &p.Date, &p.Seconds, &p.Comment, &finished); err != nil {
			return nil, undecodable(err)
		}
		if id.Valid {
			p.ID = id.String
		}
		if p.FinishedTasks, err = decodeList(finished); err != nil {
			return nil, undecodable(err)
		}
		past = append(past, p)
	}
	return past, rows.Err()
}

// Save replaces the stored record inside one transaction
func (s *SQLiteStore) Save(rec *domain.Record) error {
	w := toWire(rec)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "tasks", "time_blocks", "past_shifts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('version', ?), ('state', ?)`,
		w.Version, strconv.Itoa(int(w.State))); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}

	for i, text := range w.Tasks {
		if _, err := tx.Exec(`INSERT INTO tasks (position, text) VALUES (?, ?)`, i, text); err != nil {
			return fmt.Errorf("writing task %d: %w", i, err)
		}
	}

	for i, b := range w.Times {
		finished, err := json.Marshal(b.FinishedTasks)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO time_blocks (position, start_unix, end_unix, finished_tasks) VALUES (?, ?, ?, ?)`,
			i, b.Start, b.End, string(finished)); err != nil {
			return fmt.Errorf("writing time block %d: %w", i, err)
		}
	}

	for i, p := range w.Past {
		finished, err := json.Marshal(p.FinishedTasks)
		if err != nil {
			return err
		}
		var id sql.NullString
		if p.ID != "" {
			id = sql.NullString{String: p.ID, Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO past_shifts (position, id, date_unix, seconds, comment, finished_tasks) VALUES (?, ?, ?, ?, ?, ?)`,
			i, id, p.Date, p.Seconds, p.Comment, string(finished)); err != nil {
			return fmt.Errorf("writing past shift %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	s.logger.Debug("saved record", zap.String("path", s.path), zap.Int("past", len(w.Past)))
	return nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}
