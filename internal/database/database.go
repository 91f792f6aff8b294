package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/karanns19/task-manager/internal/config"
)

const maxConnectAttempts = 5

// New creates a new database connection pool and verifies connectivity,
// retrying with exponential backoff before giving up.
func New(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.DatabasePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	backoff := time.Second
	for attempt := 1; ; attempt++ {
		err = db.Ping()
		if err == nil {
			return db, nil
		}
		if attempt == maxConnectAttempts {
			db.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxConnectAttempts, err)
		}
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Database ping failed, retrying")
		time.Sleep(backoff)
		backoff *= 2
	}
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'To Do' CHECK (status IN ('To Do', 'In Progress', 'Done')),
		deadline DATETIME,
		reminder_time DATETIME,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
