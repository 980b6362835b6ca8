package database

import (
	"fmt"

	"github.com/Aryanthe1/Goal-Sync/server/internal/config"
	logging "github.com/Aryanthe1/Goal-Sync/server/internal/logging"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Dialector picks the GORM dialector for the configured driver. Postgres is
// opened through lib/pq so that constraint errors surface as *pq.Error.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.DSN()}), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN enables foreign keys so ON DELETE CASCADE is honoured.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

// Init connects using the global configuration, migrates, and sets DB.
func Init(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, log, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully.", zap.String("driver", cfg.Driver))

	if err := Migrate(db, log); err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

// Open opens a GORM handle with the zap query logger attached.
func Open(dialector gorm.Dialector, log *zap.Logger, logLevel string) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormZapLogger(log, logLevel),
	})
}

// Migrate creates or updates every table and the custom indexes.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	// AutoMigrate creates tables, columns, unique indexes, checks and foreign
	// keys. Composite non-unique indexes with ordering are created below.
	err := db.AutoMigrate(
		&models.User{},
		&models.Goal{},
		&models.GoalCompletion{},
		&models.Checkin{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	log.Info("Database migrations completed successfully.")

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_completions_user_date ON goal_completions (user_id, date DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_user_score ON checkins (user_id, burnout_score);`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create custom index: %w", err)
		}
	}
	log.Info("Custom indexes ensured successfully.")
	return nil
}
