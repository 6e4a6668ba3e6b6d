package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/cartloop/storefront-auth/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for both token classes (default: storefront-auth)

	// Token secrets. Independent by design: leaking one class's secret
	// must not allow forging the other class.
	AccessSecret  string // Required: AUTH_ACCESS_SECRET
	RefreshSecret string // Required: AUTH_REFRESH_SECRET

	AccessTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile   string // Optional: path to password pepper file (default: ./pepper)

	// SMTP settings for the code emails. With no host configured the
	// service falls back to the dev log mailer.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Startup seeding of the first superadmin. Optional; signup only ever
	// creates customers.
	SeedSuperAdminEmail    string
	SeedSuperAdminPassword string

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

var ErrMissingSecrets = errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must be set and distinct")

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "storefront-auth"),
		AccessSecret:  os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:  getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:    getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@localhost"),

		SeedSuperAdminEmail:    os.Getenv("AUTH_SEED_SUPERADMIN_EMAIL"),
		SeedSuperAdminPassword: os.Getenv("AUTH_SEED_SUPERADMIN_PASSWORD"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations that would silently weaken the token
// scheme: missing secrets, or the same secret reused for both classes.
func (c Config) Validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" || c.AccessSecret == c.RefreshSecret {
		return ErrMissingSecrets
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration strings (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept bare integers as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
