package config

import (
	"os"
	"time"
)

// InsecureDefaultSecret is the JWT signing secret used when JWT_SECRET is
// not set. Deployments must override it.
const InsecureDefaultSecret = "dev_secret"

// Config holds all runtime settings. It is built once in main and passed
// to components; nothing reads the environment after startup.
type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Addr:      ":" + getenv("PORT", "8080"),
		DBPath:    getenv("DB_PATH", "data/app.db"),
		JWTSecret: getenv("JWT_SECRET", InsecureDefaultSecret),
		TokenTTL:  60 * time.Minute,
	}
}

// UsingDefaultSecret reports whether the insecure fallback secret is in
// use, so main can log a deployment warning.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == InsecureDefaultSecret
}
