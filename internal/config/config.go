package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL   = "http://localhost:8000/api"
	DefaultPort         = "8080"
	DefaultKafkaTopic   = "doctor_events"
	DefaultRelayTimeout = 30 * time.Second
)

// Config is built once at startup and injected into every component.
// Nothing reads the process environment after Load returns.
type Config struct {
	APIBaseURL     string
	APIToken       string
	Port           string
	Environment    string
	AllowedOrigins []string
	RelayTimeout   time.Duration

	MongoURI      string
	MongoDatabase string

	KafkaBroker string
	KafkaTopic  string

	SentryDSN  string
	AppVersion string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	allowedOrigins := []string{"http://localhost:3000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		allowedOrigins = splitList(raw)
	}

	return &Config{
		APIBaseURL:     strings.TrimRight(getEnvOrDefault("API_BASE_URL", DefaultAPIBaseURL), "/"),
		APIToken:       os.Getenv("API_TOKEN"),
		Port:           getEnvOrDefault("API_PORT", DefaultPort),
		Environment:    getEnvOrDefault("ENVIRONMENT", "development"),
		AllowedOrigins: allowedOrigins,
		RelayTimeout:   parseDuration(os.Getenv("RELAY_TIMEOUT"), DefaultRelayTimeout),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnvOrDefault("MONGO_DATABASE", "doctor_registration"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaTopic:     getEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		AppVersion:     getEnvOrDefault("APP_VERSION", "dev"),
	}
}

// HasAPIToken reports whether the upstream credential is configured.
func (c *Config) HasAPIToken() bool {
	return c.APIToken != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LogSummary prints the effective configuration without secrets.
func (c *Config) LogSummary() {
	log.Printf("API_BASE_URL: %s", c.APIBaseURL)
	log.Printf("API_PORT: %s", c.Port)
	log.Printf("ENVIRONMENT: %s", c.Environment)
	log.Printf("ALLOWED_ORIGINS: %s", strings.Join(c.AllowedOrigins, ","))
	log.Printf("RELAY_TIMEOUT: %s", c.RelayTimeout)
	if c.HasAPIToken() {
		log.Println("API_TOKEN is SET.")
	} else {
		log.Println("API_TOKEN is NOT SET. Doctor submissions will fail until it is configured.")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDuration accepts Go durations ("15s") or bare seconds ("15").
// "0" disables the bound.
func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if d, err := time.ParseDuration(raw + "s"); err == nil && d >= 0 {
		return d
	}
	log.Printf("Invalid RELAY_TIMEOUT %q, using %s", raw, fallback)
	return fallback
}
