package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "5050" {
		t.Errorf("Server.Port = %q, want 5050", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Server.JWTTTL != 24*time.Hour {
		t.Errorf("Server.JWTTTL = %v, want 24h", cfg.Server.JWTTTL)
	}
	if Conf != cfg {
		t.Error("Load should publish the config in Conf")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "8080"
database:
  driver: sqlite
  sqlite_path: /tmp/goalsync-test.db
logging:
  max_backups: 9
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOALSYNC_SERVER_PORT", "9090")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("env should override file: port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN() != "/tmp/goalsync-test.db" {
		t.Errorf("sqlite settings not applied: %+v", cfg.Database)
	}
	if cfg.Logging.MaxBackups != 9 {
		t.Errorf("Logging.MaxBackups = %d, want 9", cfg.Logging.MaxBackups)
	}
}

func TestWatch_ReloadsRemindersEnabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	write := func(enabled string) {
		t.Helper()
		body := "reminders:\n  enabled: " + enabled + "\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("true")

	if _, err := Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	Watch(zap.NewNop())
	if !RemindersEnabled() {
		t.Fatal("reminders should start enabled")
	}

	write("false")
	deadline := time.Now().Add(5 * time.Second)
	for RemindersEnabled() {
		if time.Now().After(deadline) {
			t.Fatal("reload did not switch reminders off")
		}
		time.Sleep(20 * time.Millisecond)
	}
	if Current().Reminders.Enabled {
		t.Error("Current should return the reloaded config")
	}
}

func TestLoad_RejectsBadDriver(t *testing.T) {
	t.Setenv("GOALSYNC_DATABASE_DRIVER", "mysql")
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "database.driver") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", DBName: "goals", SSLMode: "disable"}
	want := "host=db user=u password=p dbname=goals port=5432 sslmode=disable TimeZone=UTC"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestValidate_ShortSecrets(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{SessionSecret: "short", JWTSecret: "short", JWTTTL: time.Hour},
		Database: DatabaseConfig{Driver: "sqlite"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for short secrets")
	}
	if !strings.Contains(err.Error(), "session_secret") || !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error should name both secrets: %v", err)
	}
}
