package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

func New(path string) (*Database, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=off&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection serializes every write through the same handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	d := &Database{db: db}
	if err := d.init(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("✅ Database ready: %s", path)
	return d, nil
}

func (d *Database) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS weeks (
			week_key TEXT PRIMARY KEY
		)`,

		`CREATE TABLE IF NOT EXISTS days (
			week_key TEXT NOT NULL,
			date TEXT NOT NULL,
			PRIMARY KEY (week_key, date)
		)`,

		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			week_key TEXT NOT NULL,
			date TEXT NOT NULL,
			position INTEGER NOT NULL,
			description TEXT NOT NULL,
			hours REAL CHECK(hours IS NULL OR hours >= 0),
			logged_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS reminders (
			chat_id INTEGER PRIMARY KEY,
			hour INTEGER NOT NULL CHECK(hour >= 0 AND hour <= 23),
			minute INTEGER NOT NULL CHECK(minute >= 0 AND minute <= 59),
			enabled BOOLEAN DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_day ON activities(week_key, date, position)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}
