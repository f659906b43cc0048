// Package storage provides SQLite-based persistence for solve results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only the outcome of a run is stored (counts and timing), never the
// simulation state itself.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is the recorded outcome of one map analysis.
type RunRecord struct {
	ID         string
	MapID      string
	MapHash    string
	Width      int
	Height     int
	Visited    int
	Placements int
	Looped     bool
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// NewRunRecord builds an unsaved record from an analysis result.
func NewRunRecord(mapID, mapHash string, height, width int, res patrol.Result) RunRecord {
	return RunRecord{
		MapID:      mapID,
		MapHash:    mapHash,
		Width:      width,
		Height:     height,
		Visited:    res.Visited,
		Placements: res.Placements,
		Looped:     res.Looped,
		Elapsed:    res.Elapsed,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			map_id TEXT NOT NULL,
			map_hash TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			visited INTEGER NOT NULL,
			placements INTEGER NOT NULL,
			looped INTEGER NOT NULL DEFAULT 0,
			elapsed_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_map_id ON runs(map_id);
		CREATE INDEX IF NOT EXISTS idx_runs_map_hash ON runs(map_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. A time-ordered UUID is assigned when rec.ID is
// empty. Returns the ID of the stored record.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, map_id, map_hash, width, height, visited, placements, looped, elapsed_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.MapID, rec.MapHash, rec.Width, rec.Height,
		rec.Visited, rec.Placements, boolToInt(rec.Looped), rec.Elapsed.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return rec.ID, nil
}

const selectRuns = `SELECT id, map_id, map_hash, width, height, visited, placements, looped, elapsed_us, created_at FROM runs`

// RecentRuns returns the newest runs for a map, newest first.
func (s *Store) RecentRuns(mapID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(selectRuns+` WHERE map_id = ? ORDER BY seq DESC LIMIT ?`, mapID, limit)
}

// AllRuns returns the newest runs across all maps, newest first.
func (s *Store) AllRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(selectRuns+` ORDER BY seq DESC LIMIT ?`, limit)
}

// LatestRun returns the newest run for a map, or nil if none exists.
func (s *Store) LatestRun(mapID string) (*RunRecord, error) {
	runs, err := s.RecentRuns(mapID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// RunByID returns a single run.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	runs, err := s.queryRuns(selectRuns+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("storage: run %s: %w", id, sql.ErrNoRows)
	}
	return &runs[0], nil
}

// RunCount returns how many runs are stored for a map.
func (s *Store) RunCount(mapID string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE map_id = ?", mapID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// MapIDs returns every map ID with at least one run, sorted.
func (s *Store) MapIDs() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT map_id FROM runs ORDER BY map_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query map ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// DeleteRuns removes all runs for a map.
func (s *Store) DeleteRuns(mapID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	return nil
}

// IsNotFound reports whether err came from a lookup that matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var looped int
		var elapsedUS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.MapID, &r.MapHash, &r.Width, &r.Height,
			&r.Visited, &r.Placements, &looped, &elapsedUS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Looped = looped != 0
		r.Elapsed = time.Duration(elapsedUS) * time.Microsecond

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
