package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the schema if it does not exist. Safe to run on
// every startup. Resonance cleanup on thought deletion is handled by the
// application inside a transaction; no cascade is configured here.
func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS thoughts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    content TEXT NOT NULL,
    book_title TEXT NOT NULL,
    mood TEXT NOT NULL DEFAULT '',
    user_id INTEGER NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS resonances (
    user_id INTEGER NOT NULL REFERENCES users(id),
    thought_id INTEGER NOT NULL REFERENCES thoughts(id),
    timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, thought_id)
);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
