// Package config loads application settings from a .env file and environment
// variables. Environment variables always take precedence over .env file
// values. Nothing here is part of the dataset contract itself: these knobs
// only steer the CLI around it.
package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Directory containing the four source CSV tables.
	DataDir string

	// Output path for the rendered report page.
	ReportOut string

	// PostgreSQL – used only by the export command. Either set DatabaseURL
	// directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	Debug bool
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	// Silently load .env – OK if the file doesn't exist.
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("CRASH_DATA_DIR", "data")
	v.SetDefault("REPORT_OUT", "report.html")
	v.SetDefault("DB_USER", "nzcrash")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "nzcrash")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DEBUG", false)

	return &Config{
		DataDir:     v.GetString("CRASH_DATA_DIR"),
		ReportOut:   v.GetString("REPORT_OUT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		Debug:       v.GetBool("DEBUG"),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// RequireDB validates the fields the export command needs. The other
// commands never touch a database, so this is checked on demand rather than
// at load time.
func (c *Config) RequireDB() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return fmt.Errorf("config: DATABASE_URL or DB_PASS must be set for export")
	}
	return nil
}
