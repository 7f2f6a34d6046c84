package storage

import (
	"database/sql"

	"portfolio-observer/src/logger"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresSlot keeps the daily cache blob in a one-row postgres table, for
// deployments where several consumers read the same slot.
type PostgresSlot struct {
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresSlot(connectionString string, log *logger.Logger) (*PostgresSlot, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
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

	return &PostgresSlot{DB: db, Logger: log}, nil
}

// -----------------------------------------------------------------------------

func (p *PostgresSlot) Read() (string, error) {
	var payload string
	err := p.DB.QueryRow("SELECT payload FROM daily_slot WHERE id = 1").Scan(&payload)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return payload, nil
}

// -----------------------------------------------------------------------------

func (p *PostgresSlot) Write(payload string) error {
	query := `
		INSERT INTO daily_slot (id, payload) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload
	`
	_, err := p.DB.Exec(query, payload)
	return err
}

// -----------------------------------------------------------------------------

func (p *PostgresSlot) Close() error {
	if p.DB != nil {
		return p.DB.Close()
	}
	return nil
}
