package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "8000"); got != "8000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8000")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "9090"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "8000"); got != "9090" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9090")
	}
}

func TestGetEnvIntRejectsInvalidValues(t *testing.T) {
	const key = "TEST_CACHE_TTL_MINUTES"

	_ = os.Unsetenv(key)
	if got := getEnvInt(key, 30); got != 30 {
		t.Fatalf("getEnvInt unset = %d, want 30", got)
	}

	_ = os.Setenv(key, "abc")
	defer os.Unsetenv(key)
	if got := getEnvInt(key, 30); got != 30 {
		t.Fatalf("getEnvInt invalid = %d, want fallback 30", got)
	}

	_ = os.Setenv(key, "-5")
	if got := getEnvInt(key, 30); got != 30 {
		t.Fatalf("getEnvInt negative = %d, want fallback 30", got)
	}

	_ = os.Setenv(key, "45")
	if got := getEnvInt(key, 30); got != 45 {
		t.Fatalf("getEnvInt = %d, want 45", got)
	}
}

func TestLoadReadsTimeoutsAndTTL(t *testing.T) {
	_ = os.Setenv("APP_PORT", "1234")
	_ = os.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	_ = os.Setenv("CACHE_TTL_MINUTES", "10")
	defer func() {
		_ = os.Unsetenv("APP_PORT")
		_ = os.Unsetenv("FETCH_TIMEOUT_SECONDS")
		_ = os.Unsetenv("CACHE_TTL_MINUTES")
	}()

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("FetchTimeout = %s, want 5s", cfg.FetchTimeout)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("CacheTTL = %s, want 10m", cfg.CacheTTL)
	}
}
