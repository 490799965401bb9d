package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	UIAddr     string
	UIPort     string
	LogLevel   string

	// Client side (stockctl)
	APIURL                string
	SessionFile           string
	RequestTimeout        time.Duration
	LoginRedirectDelay    time.Duration
	RegisterRedirectDelay time.Duration
}

const (
	DefaultJWTSecret  = "change-me-inventory-secret"
	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultDBDriver   = "sqlite"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBName     = "inventory"
	DefaultDBSSLMode  = "disable"
	// Used only when DB_DRIVER=sqlite
	DefaultDBPath   = "inventory.db"
	DefaultUIAddr   = "localhost"
	DefaultUIPort   = "5000"
	DefaultLogLevel = "info"

	DefaultAPIURL                = "http://localhost:5000"
	DefaultSessionFile           = "" // resolved under the user config dir
	DefaultRequestTimeout        = 10 * time.Second
	DefaultLoginRedirectDelay    = 1500 * time.Millisecond
	DefaultRegisterRedirectDelay = 2000 * time.Millisecond
)

// EnvFiles are tried in order by LoadEnv; the first one that loads wins.
var EnvFiles = []string{"/etc/inventory-ui/.env", ".env"}

// LoadEnv loads the first readable .env file into the process environment.
// Variables that are already set are never overwritten.
func LoadEnv() string {
	for _, path := range EnvFiles {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

func LoadConfig() *Config {
	return &Config{
		JWTSecret:  getEnvOrDefault("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:   getDurationOrDefault("TOKEN_TTL", DefaultTokenTTL),
		DBDriver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", DefaultDBDriver)),
		DBHost:     getEnvOrDefault("DB_HOST", DefaultDBHost),
		DBPort:     getEnvOrDefault("DB_PORT", DefaultDBPort),
		DBUser:     getEnvOrDefault("DB_USER", DefaultDBUser),
		DBPassword: getEnvOrDefault("DB_PASSWORD", DefaultDBPassword),
		DBName:     getEnvOrDefault("DB_NAME", DefaultDBName),
		DBSSLMode:  getEnvOrDefault("DB_SSL_MODE", DefaultDBSSLMode),
		DBPath:     getEnvOrDefault("DB_PATH", DefaultDBPath),
		UIAddr:     getEnvOrDefault("UI_ADDR", DefaultUIAddr),
		UIPort:     getEnvOrDefault("UI_PORT", DefaultUIPort),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", DefaultLogLevel),

		APIURL:                strings.TrimRight(getEnvOrDefault("API_URL", DefaultAPIURL), "/"),
		SessionFile:           getEnvOrDefault("SESSION_FILE", DefaultSessionFile),
		RequestTimeout:        getDurationOrDefault("REQUEST_TIMEOUT", DefaultRequestTimeout),
		LoginRedirectDelay:    getDurationOrDefault("LOGIN_REDIRECT_DELAY", DefaultLoginRedirectDelay),
		RegisterRedirectDelay: getDurationOrDefault("REGISTER_REDIRECT_DELAY", DefaultRegisterRedirectDelay),
	}
}

// Addr is the listen address of the backend.
func (c *Config) Addr() string {
	return c.UIAddr + ":" + c.UIPort
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("config: ignoring invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
