package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the snapshot in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at dbPath and runs migrations.
// A leading ~ expands to the home directory.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
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

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS campaign (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL,
			total_score INTEGER NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_progress (
			level_name TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			enemies_defeated INTEGER NOT NULL DEFAULT 0,
			elapsed_time REAL NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			perfect INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save implements Store. The previous snapshot is replaced as a whole.
func (s *SQLiteStore) Save(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO campaign (id, current_index, total_score, saved_at)
		 VALUES (1, ?, ?, CURRENT_TIMESTAMP)`,
		snap.CurrentIndex, snap.TotalScore,
	); err != nil {
		return fmt.Errorf("storage: cannot save campaign: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM level_progress"); err != nil {
		return fmt.Errorf("storage: cannot clear level progress: %w", err)
	}
	for name, r := range snap.Levels {
		if _, err := tx.Exec(
			`INSERT INTO level_progress
			 (level_name, score, coins, enemies_defeated, elapsed_time, completed, perfect, attempts, stars)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			name, r.Score, r.Coins, r.EnemiesDefeated, r.ElapsedTime,
			boolToInt(r.Completed), boolToInt(r.Perfect), r.Attempts, r.Stars,
		); err != nil {
			return fmt.Errorf("storage: cannot save level %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// Load implements Store
func (s *SQLiteStore) Load() (Snapshot, error) {
	snap := Snapshot{Levels: make(map[string]Record)}

	err := s.db.QueryRow(
		"SELECT current_index, total_score FROM campaign WHERE id = 1",
	).Scan(&snap.CurrentIndex, &snap.TotalScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot query campaign: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT level_name, score, coins, enemies_defeated, elapsed_time, completed, perfect, attempts, stars
		 FROM level_progress`,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot query level progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name               string
			r                  Record
			completed, perfect int
		)
		if err := rows.Scan(
			&name, &r.Score, &r.Coins, &r.EnemiesDefeated, &r.ElapsedTime,
			&completed, &perfect, &r.Attempts, &r.Stars,
		); err != nil {
			return Snapshot{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Completed = completed != 0
		r.Perfect = perfect != 0
		snap.Levels[name] = r
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snap, nil
}

// Clear implements Store
func (s *SQLiteStore) Clear() error {
	for _, table := range []string{"level_progress", "campaign"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
