package config

import (
	"errors"
	"io/fs"
	"time"

	"warehouse_backend/internal/database"
	"warehouse_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the server, read from the environment.
type Config struct {
	Port               string
	GinMode            string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration

	LogLevel  string
	LogFormat string

	DBEnabled bool
	Database  database.Options

	AuthEnabled bool
	JWTSecret   string
	JWTTTL      time.Duration

	SeedEnabled       bool
	SeedAdminPassword string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:               utils.Getenv("PORT", "8080"),
		GinMode:            utils.Getenv("GIN_MODE", "debug"),
		CORSAllowedOrigins: utils.GetenvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		ShutdownTimeout:    time.Duration(utils.GetenvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,

		LogLevel:  utils.Getenv("LOG_LEVEL", "info"),
		LogFormat: utils.Getenv("LOG_FORMAT", "console"),

		DBEnabled: utils.GetenvBool("DB_ENABLED", false),
		Database: database.Options{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "warehouse_user"),
			Password:   utils.Getenv("DB_PASSWORD", "warehouse_password"),
			Name:       utils.Getenv("DB_NAME", "warehouse_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},

		AuthEnabled: utils.GetenvBool("AUTH_ENABLED", false),
		JWTSecret:   utils.Getenv("JWT_SECRET_KEY", ""),
		JWTTTL:      time.Duration(utils.GetenvInt("JWT_TTL_MINUTES", 60)) * time.Minute,

		SeedEnabled:       utils.GetenvBool("SEED_ENABLED", true),
		SeedAdminPassword: utils.Getenv("SEED_ADMIN_PASSWORD", ""),
	}

	if cfg.AuthEnabled && len(cfg.JWTSecret) < 16 {
		return nil, errors.New("JWT_SECRET_KEY must be set to at least 16 characters when AUTH_ENABLED=true")
	}
	return cfg, nil
}
