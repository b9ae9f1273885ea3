package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stockmaster_backend/pkg/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Upload   UploadConfig   `yaml:"upload"`
	Log      LogConfig      `yaml:"log"`
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Environment        string   `yaml:"environment"`
	Port               string   `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	JWTExpiresIn time.Duration `yaml:"jwt_expires_in"`
}

// UploadConfig controls profile picture storage.
type UploadConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Environment:        EnvDevelopment,
			Port:               "5000",
			CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "",
			Name:            "stockmaster",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			AutoMigrate:     true,
		},
		Auth: AuthConfig{
			JWTExpiresIn: 24 * time.Hour,
		},
		Upload: UploadConfig{
			Dir:      "uploads",
			MaxBytes: 5 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.App.Environment = strings.ToLower(utils.Getenv("APP_ENV", cfg.App.Environment))
	cfg.App.Port = utils.Getenv("PORT", cfg.App.Port)
	cfg.App.CORSAllowedOrigins = utils.GetenvList("CORS_ALLOWED_ORIGINS", cfg.App.CORSAllowedOrigins)

	cfg.Database.Host = utils.Getenv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = utils.Getenv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = utils.Getenv("DB_USER", cfg.Database.User)
	cfg.Database.Password = utils.Getenv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = utils.Getenv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = utils.Getenv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = utils.GetenvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = utils.GetenvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetime = utils.GetenvDuration("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)
	cfg.Database.AutoMigrate = utils.GetenvBool("DB_AUTO_MIGRATE", cfg.Database.AutoMigrate)

	cfg.Auth.JWTSecret = utils.Getenv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpiresIn = utils.GetenvDuration("JWT_EXPIRES_IN", cfg.Auth.JWTExpiresIn)

	cfg.Upload.Dir = utils.Getenv("UPLOAD_DIR", cfg.Upload.Dir)
	cfg.Upload.MaxBytes = utils.GetenvInt64("UPLOAD_MAX_BYTES", cfg.Upload.MaxBytes)

	cfg.Log.Level = utils.Getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = utils.Getenv("LOG_FORMAT", cfg.Log.Format)
}

// devSecret signs tokens in development when JWT_SECRET is unset.
const devSecret = "stockmaster-development-secret"

// Validate checks the configuration for values the server cannot start with.
// In development an empty JWT secret is replaced with a fixed local one.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.App.Port) == "" {
		errs = append(errs, errors.New("PORT must be set"))
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be positive"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must not be negative"))
	}
	if c.Auth.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		if c.IsDevelopment() {
			c.Auth.JWTSecret = devSecret
		} else {
			errs = append(errs, errors.New("JWT_SECRET is required outside development"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether APP_ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// DSN returns the lib/pq connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
