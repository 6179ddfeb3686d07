// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務啟動所需的所有設定，皆來自環境變數 (可由 .env 提供)
type Config struct {
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPAddr    string
	WorkerCount int

	// MigrateReset 啟動時先 down 到 version 0 再重新 up，僅供開發環境使用
	MigrateReset bool

	LogLevel  string
	LogFormat string

	JWTTTL          time.Duration
	RateLimitRPS    float64
	RevenueCacheTTL time.Duration

	AllowAdminRegistration bool
	AdminUsername          string
	AdminEmail             string
	AdminPassword          string
}

// SeedAdmin reports whether all ADMIN_* variables are present.
func (c *Config) SeedAdmin() bool {
	return c.AdminUsername != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

var loadDotenv = godotenv.Load

// Load 讀取 .env (不存在時略過) 後解析環境變數
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("讀取 .env 失敗: %w", err)
	}

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0, 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", 1, 1); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = envDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RevenueCacheTTL, err = envDuration("REVENUE_CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.AllowAdminRegistration, err = envBool("ALLOW_ADMIN_REGISTRATION", false); err != nil {
		return nil, err
	}
	if cfg.MigrateReset, err = envBool("MIGRATE_RESET", false); err != nil {
		return nil, err
	}

	cfg.RateLimitRPS = 5
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("無效的 RATE_LIMIT_RPS: %q", v)
		}
		cfg.RateLimitRPS = f
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def, min int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return b, nil
}
