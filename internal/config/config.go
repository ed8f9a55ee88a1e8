package config // package config loads application configuration from environment variables

import (
	"net"
	"os"

	"github.com/joho/godotenv"
)

// DBConfig holds the MySQL connection parameters.  Password is the only
// secret and must never be rendered or logged.
type DBConfig struct {
	Host     string // DB_HOST
	Port     string // DB_PORT
	Name     string // DB_NAME
	User     string // DB_USER
	Password string // DB_PASSWORD
}

// Addr returns host:port suitable for a tcp dial.
func (c DBConfig) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// Config holds all runtime configuration values.  It is built once at
// startup by Load and passed by pointer to the components that need it.
type Config struct {
	Env       string // application environment (APP_ENV)
	Port      string // HTTP port to listen on (APP_PORT)
	LogLevel  string // zap level name (LOG_LEVEL)
	DB        DBConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Events    EventsConfig
}

// Load reads configuration values from environment variables.  A missing
// variable is never an error: every field falls back to a default.
func Load() Config {
	return Config{
		Env:       envLookup("APP_ENV", "development"),
		Port:      envStr("APP_PORT", "8080"),
		LogLevel:  envStr("LOG_LEVEL", "info"),
		DB:        LoadDBConfig(),
		RateLimit: LoadRateLimitConfig(),
		Redis:     LoadRedisConfig(),
		Events:    LoadEventsConfig(),
	}
}

// LoadDBConfig reads the database settings.  A variable that is set but
// empty is passed through as-is; only unset variables take the default.
func LoadDBConfig() DBConfig {
	return DBConfig{
		Host:     envLookup("DB_HOST", "mysql"),
		Port:     envLookup("DB_PORT", "3306"),
		Name:     envLookup("DB_NAME", "hello_world"),
		User:     envLookup("DB_USER", "app_user"),
		Password: envLookup("DB_PASSWORD", "app_password"),
	}
}

// LoadEnvFile loads variables from the given dotenv files (".env" when none
// are given) without overriding variables that are already set.
func LoadEnvFile(paths ...string) error {
	return godotenv.Load(paths...)
}

func envLookup(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
