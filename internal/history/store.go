// # internal/history/store.go
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Snapshot is one recorded analysis run over the workspace.
type Snapshot struct {
	RunID             string
	Timestamp         time.Time
	FileCount         int
	SymbolCount       int
	RelationshipCount int
	DependencyCount   int
	ErrorCount        int
	CycleCount        int
	Duration          time.Duration
}

// Store persists analysis snapshots in a local SQLite database.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Append records snap, assigning a run id and timestamp when unset.
// It returns the run id.
func (s *Store) Append(snap Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return "", fmt.Errorf("history store is closed")
	}

	if snap.RunID == "" {
		snap.RunID = uuid.NewString()
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
INSERT INTO snapshots (run_id, ts_utc, file_count, symbol_count, relationship_count, dependency_count, error_count, cycle_count, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID,
		snap.Timestamp.UTC().Format(time.RFC3339Nano),
		snap.FileCount,
		snap.SymbolCount,
		snap.RelationshipCount,
		snap.DependencyCount,
		snap.ErrorCount,
		snap.CycleCount,
		snap.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("append snapshot: %w", err)
	}
	return snap.RunID, nil
}

// Recent returns the newest n snapshots, most recent first.
func (s *Store) Recent(n int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("history store is closed")
	}

	rows, err := s.db.Query(`
SELECT run_id, ts_utc, file_count, symbol_count, relationship_count, dependency_count, error_count, cycle_count, duration_ms
FROM snapshots ORDER BY ts_utc DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts string
		var durationMs int64
		if err := rows.Scan(&snap.RunID, &ts, &snap.FileCount, &snap.SymbolCount, &snap.RelationshipCount, &snap.DependencyCount, &snap.ErrorCount, &snap.CycleCount, &durationMs); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		snap.Duration = time.Duration(durationMs) * time.Millisecond
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
