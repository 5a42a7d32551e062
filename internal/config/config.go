package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	NotFoundCompat = "compat"
	NotFoundStrict = "strict"
)

type Config struct {
	GinMode  string
	TZ       string
	HTTPAddr string
	LogLevel string

	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPass            string
	DBName            string
	DBSSLMode         string
	SQLitePath        string
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	JWTSecret     string
	TokenTTL      time.Duration
	CookieName    string
	SecureCookies bool
	BcryptCost    int

	NotFoundMode    string
	ShutdownTimeout time.Duration
}

// Load reads an optional env file (ENV_FILE, default ".env") and then the
// process environment. Variables already set in the environment win.
func Load() *Config {
	envFile := getenv("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("warning: could not load %s: %v", envFile, err)
		}
	}

	cfg := &Config{
		GinMode:  getenv("GIN_MODE", "debug"),
		TZ:       getenv("TZ", "UTC"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:          getenv("DB_DRIVER", DriverPostgres),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPass:            getenv("DB_PASS", ""),
		DBName:            getenv("DB_NAME", "postgres"),
		DBSSLMode:         os.Getenv("DB_SSLMODE"),
		SQLitePath:        getenv("SQLITE_PATH", "bookshelf.db"),
		DBConnectAttempts: getenvInt("DB_CONNECT_ATTEMPTS", 10),
		DBConnectDelay:    getenvDuration("DB_CONNECT_DELAY", 2*time.Second),

		JWTSecret:     os.Getenv("AUTH_JWT_SECRET"),
		TokenTTL:      getenvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		CookieName:    getenv("AUTH_COOKIE_NAME", "token"),
		SecureCookies: getenvBool("AUTH_SECURE_COOKIES", false),
		BcryptCost:    getenvInt("AUTH_BCRYPT_COST", 10),

		NotFoundMode:    getenv("BOOKS_NOT_FOUND_MODE", NotFoundCompat),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.JWTSecret == "" && cfg.GinMode != "release" {
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg
}

func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	switch c.NotFoundMode {
	case NotFoundCompat, NotFoundStrict:
	default:
		errs = append(errs, fmt.Errorf("unsupported BOOKS_NOT_FOUND_MODE %q", c.NotFoundMode))
	}

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}

	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}

	if c.DBConnectAttempts < 1 {
		errs = append(errs, errors.New("DB_CONNECT_ATTEMPTS must be at least 1"))
	}

	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("warning: %s=%q is not a boolean, using %t", key, v, def)
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}
