package database

import (
	"path/filepath"
	"testing"

	"github.com/Aryanthe1/Goal-Sync/server/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

func TestMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goalsync-test.db")
	db, err := Open(sqlite.Open(SQLiteDSN(path)), zap.NewNop(), "silent")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Running twice must be a no-op.
	if err := Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	for _, table := range []string{"users", "goals", "goal_completions", "checkins"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
	if !db.Migrator().HasIndex("checkins", "uidx_checkin_user_date") {
		t.Error("unique index on checkins(user_id, date) missing")
	}
	if !db.Migrator().HasIndex("goal_completions", "uidx_goal_date") {
		t.Error("unique index on goal_completions(goal_id, date) missing")
	}
}

func TestDialector(t *testing.T) {
	if _, err := Dialector(config.DatabaseConfig{Driver: "sqlite", SQLitePath: "x.db"}); err != nil {
		t.Errorf("sqlite: %v", err)
	}
	if d, err := Dialector(config.DatabaseConfig{Driver: "postgres"}); err != nil || d.Name() != "postgres" {
		t.Errorf("postgres: %v %v", d, err)
	}
	if _, err := Dialector(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
