package db

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/billmal071/hcq/internal/config"
	_ "modernc.org/sqlite"
)

var database *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS search_history (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    query           TEXT NOT NULL,
    kind            TEXT NOT NULL DEFAULT 'book',
    result_count    INTEGER DEFAULT 0,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_search_history_query ON search_history(query);
CREATE INDEX IF NOT EXISTS idx_search_history_created ON search_history(created_at);
`

// Init initializes the database connection and schema
func Init() error {
	return InitAt(config.GetDBPath())
}

// InitAt opens the database at a specific path. Split out from Init so tests
// can point at a temp directory.
func InitAt(dbPath string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	database = db
	return nil
}

// DB returns the database connection
func DB() *sql.DB {
	return database
}

// Close closes the database connection
func Close() error {
	if database != nil {
		return database.Close()
	}
	return nil
}
