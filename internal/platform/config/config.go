package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration. Everything comes from the
// environment so main stays lean and deployments stay twelve-factor.
type Config struct {
	Addr     string
	LogLevel string

	// Upstream record sources. The national registry service serves
	// individuals and children; the labour directorate service serves
	// incomes and estimated birth dates.
	RegistryAPIURL string
	LabourAPIURL   string

	// DataDir, when set, loads the four record collections from local
	// ';'-delimited CSV files instead of the upstream APIs.
	DataDir string

	// PostgresURL, when set, persists record snapshots to PostgreSQL in
	// addition to serving them from memory.
	PostgresURL string

	Redis           RedisConfig
	ProfileCacheTTL time.Duration

	ShutdownTimeout time.Duration
}

// RedisConfig holds connection settings for the profile cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults matching the original upstream service ports.
func FromEnv() Config {
	return Config{
		Addr:           getEnv("ORLOF_ADDR", ":4000"),
		LogLevel:       getEnv("ORLOF_LOG_LEVEL", "info"),
		RegistryAPIURL: getEnv("REGISTRY_API_URL", "http://localhost:4001"),
		LabourAPIURL:   getEnv("LABOUR_API_URL", "http://localhost:4002"),
		DataDir:        os.Getenv("ORLOF_DATA_DIR"),
		PostgresURL:    os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		ProfileCacheTTL: getEnvDuration("PROFILE_CACHE_TTL", 5*time.Minute),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
