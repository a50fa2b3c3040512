package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"API_BASE_URL", "API_TOKEN", "API_PORT", "ENVIRONMENT",
		"ALLOWED_ORIGINS", "RELAY_TIMEOUT", "KAFKA_TOPIC",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.HasAPIToken() {
		t.Error("HasAPIToken() = true with no API_TOKEN set")
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.RelayTimeout != DefaultRelayTimeout {
		t.Errorf("RelayTimeout = %s, want %s", cfg.RelayTimeout, DefaultRelayTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.KafkaTopic != DefaultKafkaTopic {
		t.Errorf("KafkaTopic = %q", cfg.KafkaTopic)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://records.example.com/api/")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("RELAY_TIMEOUT", "5")
	t.Setenv("ENVIRONMENT", "production")

	cfg := FromEnv()

	if cfg.APIBaseURL != "https://records.example.com/api" {
		t.Errorf("APIBaseURL = %q, trailing slash should be trimmed", cfg.APIBaseURL)
	}
	if !cfg.HasAPIToken() {
		t.Error("HasAPIToken() = false with API_TOKEN set")
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false")
	}
	if cfg.RelayTimeout != 5*time.Second {
		t.Errorf("RelayTimeout = %s, want 5s", cfg.RelayTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Minute},
		{"0", 0},
		{"250ms", 250 * time.Millisecond},
		{"12", 12 * time.Second},
		{"-3s", time.Minute},
		{"soon", time.Minute},
	}
	for _, tc := range cases {
		if got := parseDuration(tc.raw, time.Minute); got != tc.want {
			t.Errorf("parseDuration(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
