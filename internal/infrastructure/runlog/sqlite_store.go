package runlog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// SQLiteStore records every attempted external step in a SQLite database.
// The database file is created on the first Append; reading a log that does
// not exist yet returns no records.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore returns a run log backed by the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// open connects to the database, creating it only when create is set.
// It reports false when the database does not exist and was not created.
func (s *SQLiteStore) open(create bool) (bool, error) {
	if s.db != nil {
		return true, nil
	}
	if !create {
		if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return false, fmt.Errorf("create run log directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return false, fmt.Errorf("open run log %s: %w", s.path, err)
	}
	s.db = db
	if err := s.init(); err != nil {
		db.Close()
		s.db = nil
		return false, fmt.Errorf("init run log %s: %w", s.path, err)
	}
	return true, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		step TEXT NOT NULL,
		program TEXT NOT NULL,
		args TEXT NOT NULL,
		success INTEGER NOT NULL,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);`)
	return err
}

// Append inserts a new record.
func (s *SQLiteStore) Append(record domain.RunRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if _, err := s.open(true); err != nil {
		return err
	}
	args, err := json.Marshal(record.Args)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO runs
		(run_id, timestamp, step, program, args, success, exit_code, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Timestamp.UTC().Format(time.RFC3339Nano),
		string(record.Step),
		record.Program,
		string(args),
		boolToInt(record.Success),
		record.ExitCode,
		record.DurationMS,
		record.Error,
	)
	return err
}

// Recent returns the newest records first (limit <= 0 means all).
func (s *SQLiteStore) Recent(limit int, failedOnly bool) ([]domain.RunRecord, error) {
	if ok, err := s.open(false); err != nil || !ok {
		return nil, err
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT run_id, timestamp, step, program, args, success, exit_code, duration_ms, COALESCE(error, '') FROM runs")
	var args []interface{}
	if failedOnly {
		builder.WriteString(" WHERE success = 0")
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts, step, rawArgs string
		var success int
		if err := rows.Scan(&rec.RunID, &ts, &step, &rec.Program, &rawArgs, &success, &rec.ExitCode, &rec.DurationMS, &rec.Error); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		if err := json.Unmarshal([]byte(rawArgs), &rec.Args); err != nil {
			return nil, fmt.Errorf("decode args of run %s: %w", rec.RunID, err)
		}
		rec.Step = domain.Step(step)
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.RunLog = (*SQLiteStore)(nil)
