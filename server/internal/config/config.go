package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// EnvPrefix prefixes every environment override, e.g. GOALSYNC_SERVER_PORT.
const EnvPrefix = "GOALSYNC"

// Config struct is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port          string        `mapstructure:"port"`
	SessionSecret string        `mapstructure:"session_secret"`
	SecureCookies bool          `mapstructure:"secure_cookies"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTTTL        time.Duration `mapstructure:"jwt_ttl"`
	AssetsDir     string        `mapstructure:"assets_dir"`
	LoginRate     int           `mapstructure:"login_rate_per_minute"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"` // postgres | sqlite
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"dbname"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
	LogLevel   string `mapstructure:"log_level"` // silent | error | warn | info
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

// RemindersConfig controls the daily check-in reminder job.
type RemindersConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// DSN builds the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver))
	}
	if len(c.Server.SessionSecret) < 32 {
		errs = append(errs, errors.New("server.session_secret must be at least 32 characters"))
	}
	if len(c.Server.JWTSecret) < 32 {
		errs = append(errs, errors.New("server.jwt_secret must be at least 32 characters"))
	}
	if c.Server.JWTTTL <= 0 {
		errs = append(errs, errors.New("server.jwt_ttl must be positive"))
	}
	return errors.Join(errs...)
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5050")
	v.SetDefault("server.session_secret", "change-me-session-secret-0123456789abcdef")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.jwt_secret", "change-me-jwt-secret-0123456789abcdefghij")
	v.SetDefault("server.jwt_ttl", 24*time.Hour)
	v.SetDefault("server.assets_dir", "./assets")
	v.SetDefault("server.login_rate_per_minute", 5)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "goalsync")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "goalsync.db")
	v.SetDefault("database.log_level", "warn")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs
	v.SetDefault("logging.console", true)

	// Reminder defaults
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "* * * * *")
}

var (
	mu     sync.RWMutex
	active *viper.Viper
)

// Load reads config.yaml from dir (optional), applies defaults and
// GOALSYNC_* environment overrides, and stores the result in Conf.
func Load(dir string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	mu.Lock()
	active = v
	Conf = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Current returns the most recently loaded configuration. Unlike Conf it is
// safe to call while Watch may be swapping in a reload.
func Current() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return Conf
}

// RemindersEnabled reports the live reminders.enabled setting.
func RemindersEnabled() bool {
	c := Current()
	return c != nil && c.Reminders.Enabled
}

// Watch reloads the configuration whenever the loaded config file changes. A
// reload that fails validation keeps the previous configuration. Settings read
// once at startup (port, database, secrets) need a restart; Current and
// RemindersEnabled see the new values.
func Watch(log *zap.Logger) {
	mu.RLock()
	v := active
	mu.RUnlock()
	if v == nil || v.ConfigFileUsed() == "" {
		log.Debug("No config file in use, hot reload disabled")
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", filepath.Base(e.Name)))
		var next Config
		if err := v.Unmarshal(&next); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		if err := next.Validate(); err != nil {
			log.Error("Reloaded configuration is invalid, keeping previous", zap.Error(err))
			return
		}
		mu.Lock()
		Conf = &next
		mu.Unlock()
	})
	v.WatchConfig()
}
