package services

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/karanns19/task-manager/internal/auth"
	"github.com/karanns19/task-manager/internal/config"
	"github.com/karanns19/task-manager/internal/database"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabasePath:      filepath.Join(t.TempDir(), "test.db"),
		DBMaxOpenConns:    4,
		DBMaxIdleConns:    2,
		DBConnMaxLifetime: time.Hour,
		DBConnMaxIdleTime: time.Minute,
		JWTSecret:         "test-secret",
		JWTIssuer:         "task-manager",
		JWTAudience:       "task-manager-client",
		AccessTokenTTL:    time.Hour,
		RefreshTokenTTL:   24 * time.Hour,
	}
}

func newTestDB(t *testing.T, cfg *config.Config) *sql.DB {
	t.Helper()
	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate: %v", err)
	}
	return db
}

func newTestServices(t *testing.T) (*UserService, *TaskService) {
	t.Helper()
	cfg := testConfig(t)
	db := newTestDB(t, cfg)
	return NewUserService(db, auth.NewManager(cfg)), NewTaskService(db)
}
