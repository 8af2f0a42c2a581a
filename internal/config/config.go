package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	// RedisAddr 为空时不启用 Redis 快照，缓存纯内存驻留
	RedisAddr string

	CronSpec string

	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

func Load() *Config {
	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "8000"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CronSpec:     getEnv("CRON_SPEC", "*/30 * * * *"),
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_MINUTES", 30)) * time.Minute,
	}

	log.Printf("config loaded: port=%s cron=%s ttl=%s", cfg.AppPort, cfg.CronSpec, cfg.CacheTTL)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
