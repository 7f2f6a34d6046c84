package storage

import (
	"database/sql"

	"portfolio-observer/src/logger"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// SQLiteSlot keeps the daily cache blob in a one-row sqlite table. The CHECK
// constraint pins the table to a single ambient cell.
type SQLiteSlot struct {
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteSlot(path string, log *logger.Logger) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteSlot{DB: db, Logger: log}

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		s.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		s.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS daily_slot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL
		);
	`
	if _, err := db.Exec(query); err != nil {
		return nil, err
	}

	return s, nil
}

// -----------------------------------------------------------------------------

func (s *SQLiteSlot) Read() (string, error) {
	var payload string
	err := s.DB.QueryRow("SELECT payload FROM daily_slot WHERE id = 1").Scan(&payload)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// -----------------------------------------------------------------------------

func (s *SQLiteSlot) Write(payload string) error {
	query := `
		INSERT INTO daily_slot (id, payload) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload
	`
	_, err := s.DB.Exec(query, payload)
	return err
}

// -----------------------------------------------------------------------------

func (s *SQLiteSlot) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
