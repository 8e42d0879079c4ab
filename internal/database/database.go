package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// Store owns the SQLite handle for users, alerts, portfolio holdings and
// persisted metrics. It is constructed once and passed by reference to the
// bot and the alert service; it is the sole source of truth for all three
// record sets.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite file at dbPath and creates the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		chat_id INTEGER PRIMARY KEY
	);`
	if _, err := db.Exec(createUsersTable); err != nil {
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	createAlertsTable := `
	CREATE TABLE IF NOT EXISTS alerts (
		chat_id INTEGER NOT NULL,
		ticker TEXT NOT NULL,
		threshold REAL NOT NULL,
		last_price REAL NOT NULL
	);`
	if _, err := db.Exec(createAlertsTable); err != nil {
		return nil, fmt.Errorf("failed to create alerts table: %w", err)
	}

	createPortfolioTable := `
	CREATE TABLE IF NOT EXISTS portfolio (
		chat_id INTEGER NOT NULL,
		ticker TEXT NOT NULL,
		amount REAL NOT NULL
	);`
	if _, err := db.Exec(createPortfolioTable); err != nil {
		return nil, fmt.Errorf("failed to create portfolio table: %w", err)
	}

	createMetricsTable := `
	CREATE TABLE IF NOT EXISTS metrics (
		metric_name TEXT NOT NULL,
		label_key TEXT DEFAULT NULL,
		label_value TEXT DEFAULT NULL,
		metric_value REAL NOT NULL,
		PRIMARY KEY (metric_name, label_key, label_value)
	);`
	if _, err := db.Exec(createMetricsTable); err != nil {
		return nil, fmt.Errorf("failed to create metrics table: %w", err)
	}

	log.Println("Database initialized successfully.")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
