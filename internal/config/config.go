package config

import (
	"fmt"
	"os"
	"strconv"
)

// devJWTSecret is the development-only signing key. Startup refuses it
// outside a development environment.
const devJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env            string
	ServerPort     string
	MySQLDSN       string
	DBMaxOpenConns int
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	AMQPURL        string
	JWTSecret      string
	UploadDir      string
}

// Load builds Config from environment with development defaults. It returns
// an error instead of silently accepting an unsafe configuration: running
// with the built-in JWT secret in production invalidates the whole token
// validity surface.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("APP_ENV", "dev"),
		ServerPort:     getEnv("SERVER_PORT", getEnv("PORT", "8080")),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/fleetdesk?charset=utf8mb4&parseTime=True&loc=Local"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 0),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
	}

	if cfg.IsProduction() && cfg.JWTSecret == devJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set explicitly when APP_ENV=%s", cfg.Env)
	}

	return cfg, nil
}

// IsProduction reports whether the app runs in a production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
