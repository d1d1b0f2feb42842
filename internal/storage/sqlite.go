// Package storage provides SQLite-based persistence for simulation run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Run records are metadata about completed runs; simulation
// state itself is never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord describes one completed (or aborted) simulation run.
type RunRecord struct {
	ID          int64
	Automaton   string // registry ID, e.g. "life" or "ants"
	Generations int    // generations actually simulated
	Population  int    // alive cells at the end of the run
	Width       int
	Height      int
	Infinite    bool
	Rules       string // "moore" or "vonneumann"; empty for ants
	Seed        int64
	CreatedAt   time.Time
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

	// Create parent directories
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			automaton TEXT NOT NULL,
			generations INTEGER NOT NULL,
			population INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			infinite INTEGER NOT NULL DEFAULT 0,
			rules TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_automaton ON runs(automaton);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(automaton, created_at DESC);
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

// SaveRun records a completed simulation run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(rec RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (automaton, generations, population, width, height, infinite, rules, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Automaton, rec.Generations, rec.Population,
		rec.Width, rec.Height, boolToInt(rec.Infinite), rec.Rules, rec.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent N runs for the given automaton.
// An empty automaton matches all runs.
func (s *Store) RecentRuns(automaton string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, automaton, generations, population, width, height, infinite, rules, seed, created_at
	          FROM runs`
	args := []any{}
	if automaton != "" {
		query += ` WHERE automaton = ?`
		args = append(args, automaton)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RunStats contains aggregated statistics for one automaton.
type RunStats struct {
	Automaton      string
	RunCount       int
	MaxGenerations int
	AvgPopulation  float64
	LastRun        time.Time
}

// Stats retrieves aggregated statistics for the given automaton.
func (s *Store) Stats(automaton string) (*RunStats, error) {
	stats := &RunStats{Automaton: automaton}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(generations), 0), COALESCE(AVG(population), 0)
		 FROM runs WHERE automaton = ?`,
		automaton,
	).Scan(&stats.RunCount, &stats.MaxGenerations, &stats.AvgPopulation)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var last any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE automaton = ? ORDER BY created_at DESC LIMIT 1`,
		automaton,
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(last)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given automaton.
func (s *Store) ClearRuns(automaton string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE automaton = ?", automaton)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// scanRun reads a single run row.
func scanRun(rows *sql.Rows) (RunRecord, error) {
	var rec RunRecord
	var infinite int
	var createdAt any

	if err := rows.Scan(
		&rec.ID, &rec.Automaton, &rec.Generations, &rec.Population,
		&rec.Width, &rec.Height, &infinite, &rec.Rules, &rec.Seed, &createdAt,
	); err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	rec.Infinite = infinite != 0
	rec.CreatedAt = parseTimestamp(createdAt)
	return rec, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
