package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, Postgres connection details, the upstream market-data
// provider, authentication, and the ingestion pipeline.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=screenpulse
//	POSTGRES_SSLMODE=disable
//	FMP_API_KEY=xxxxx
//	APP_PASSWORD=changeme
//	JWT_SECRET=super-secret
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	FMP      FMPConfig      // Upstream market-data provider
	Auth     AuthConfig     // Admin authentication
	Ingest   IngestConfig   // Ingestion pipeline tunables
	Schedule ScheduleConfig // Background job schedules
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// FMPConfig holds credentials and endpoint for the Financial Modeling Prep API.
type FMPConfig struct {
	APIKey  string
	BaseURL string
}

// AuthConfig holds the shared admin password and token signing settings.
type AuthConfig struct {
	AppPassword   string
	JWTSecret     string
	TokenTTLHours int
}

// IngestConfig tunes the ingestion pipeline.
//
// Fields:
//   - Workers: concurrent upstream fetches (sized against the provider rate limit).
//   - TargetExchanges: exchanges that make up the screening universe.
type IngestConfig struct {
	Workers         int
	TargetExchanges []string
}

// ScheduleConfig holds the cron expressions for the background jobs.
type ScheduleConfig struct {
	Enabled    bool
	IngestCron string
	QuotesCron string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "screenpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("FMP_BASE_URL", "https://financialmodelingprep.com/api")

	viper.SetDefault("TOKEN_TTL_HOURS", 24)

	viper.SetDefault("INGEST_WORKERS", 4)
	viper.SetDefault("TARGET_EXCHANGES", []string{"NYSE", "NASDAQ", "AMEX"})

	viper.SetDefault("SCHEDULE_ENABLED", false)
	// Full refresh daily at 05:00 UTC, quote refresh every four hours.
	viper.SetDefault("INGEST_CRON", "0 5 * * *")
	viper.SetDefault("QUOTES_CRON", "0 */4 * * *")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		FMP: FMPConfig{
			APIKey:  viper.GetString("FMP_API_KEY"),
			BaseURL: viper.GetString("FMP_BASE_URL"),
		},
		Auth: AuthConfig{
			AppPassword:   viper.GetString("APP_PASSWORD"),
			JWTSecret:     viper.GetString("JWT_SECRET"),
			TokenTTLHours: viper.GetInt("TOKEN_TTL_HOURS"),
		},
		Ingest: IngestConfig{
			Workers:         viper.GetInt("INGEST_WORKERS"),
			TargetExchanges: viper.GetStringSlice("TARGET_EXCHANGES"),
		},
		Schedule: ScheduleConfig{
			Enabled:    viper.GetBool("SCHEDULE_ENABLED"),
			IngestCron: viper.GetString("INGEST_CRON"),
			QuotesCron: viper.GetString("QUOTES_CRON"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.FMP.BaseURL == "" {
		missing = append(missing, "FMP_BASE_URL")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
