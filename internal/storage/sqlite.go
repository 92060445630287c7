// Package storage provides SQLite-based persistence for simulated battle
// runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished battle simulation.
type Run struct {
	ID             int64
	Seed           int64
	Policy         string
	Enemy          string
	Difficulty     string
	Turns          int
	Score          int
	Cleared        int
	MaxCascade     int
	Reshuffles     int
	SteelDestroyed int
	CreatedAt      time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			seed INTEGER NOT NULL,
			policy TEXT NOT NULL,
			enemy TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			turns INTEGER NOT NULL,
			score INTEGER NOT NULL,
			cleared INTEGER NOT NULL DEFAULT 0,
			max_cascade INTEGER NOT NULL DEFAULT 0,
			reshuffles INTEGER NOT NULL DEFAULT 0,
			steel_destroyed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(policy, score DESC);
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

// SaveRun records a finished run. ID and CreatedAt are ignored.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, policy, enemy, difficulty, turns, score, cleared, max_cascade, reshuffles, steel_destroyed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed,
		r.Policy,
		r.Enemy,
		r.Difficulty,
		r.Turns,
		r.Score,
		r.Cleared,
		r.MaxCascade,
		r.Reshuffles,
		r.SteelDestroyed,
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

const runColumns = `id, seed, policy, enemy, difficulty, turns, score, cleared,
		        max_cascade, reshuffles, steel_destroyed, created_at`

// RunByID retrieves a run. Returns nil without error if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE id = ?`,
		id,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// TopRuns retrieves the best N runs for the given policy, or for every
// policy when policy is empty. Results are ordered by score descending.
func (s *Store) TopRuns(policy string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR policy = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		policy, policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// BestScore returns the highest score for the given policy.
// Returns 0 if no runs exist.
func (s *Store) BestScore(policy string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE policy = ?",
		policy,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Policies returns every policy with a stored run, sorted by name.
func (s *Store) Policies() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT policy FROM runs ORDER BY policy")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query policies: %w", err)
	}
	defer rows.Close()

	var policies []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read policies: %w", err)
	}
	return policies, nil
}

// ClearRuns deletes all runs for the given policy.
func (s *Store) ClearRuns(policy string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE policy = ?", policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.Seed,
		&r.Policy,
		&r.Enemy,
		&r.Difficulty,
		&r.Turns,
		&r.Score,
		&r.Cleared,
		&r.MaxCascade,
		&r.Reshuffles,
		&r.SteelDestroyed,
		&createdAt,
	)
	if err != nil {
		return r, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
