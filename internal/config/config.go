package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "secret_key_change_me"

type Config struct {
	Addr          string
	GinMode       string
	SessionSecret string
	StoryLimit    int
	ThreadDepth   int
	HN            HN
	Cache         Cache
}

// HN 上游 API
type HN struct {
	BaseURL string
	Timeout time.Duration
	FanOut  int
}

// Cache 页面数据缓存
type Cache struct {
	Size               int
	TTL                time.Duration
	TopRefreshInterval time.Duration
	MaxStale           time.Duration
}

// Load 先读 .env（不存在时只记日志），再读环境变量
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	return FromEnv()
}

// FromEnv 只读取环境变量，非法值回退到默认值
func FromEnv() Config {
	cfg := Config{
		Addr:          ":" + envString("PORT", "8080"),
		GinMode:       envString("GIN_MODE", ""),
		SessionSecret: envString("SESSION_SECRET", ""),
		StoryLimit:    envInt("STORY_LIMIT", 30),
		ThreadDepth:   envInt("THREAD_DEPTH", 2),
		HN: HN{
			BaseURL: envString("HN_BASE_URL", "https://hacker-news.firebaseio.com/v0"),
			Timeout: envDuration("HN_TIMEOUT", 10*time.Second),
			FanOut:  envInt("HN_FANOUT", 10),
		},
		Cache: Cache{
			Size:               envInt("CACHE_SIZE", 500),
			TTL:                envDuration("CACHE_TTL", time.Minute),
			TopRefreshInterval: envDuration("TOP_REFRESH_INTERVAL", 5*time.Minute),
			MaxStale:           envDuration("CACHE_MAX_STALE", 30*time.Minute),
		},
	}
	if cfg.SessionSecret == "" {
		log.Println("[Config] SESSION_SECRET not set, using development secret")
		cfg.SessionSecret = devSessionSecret
	}
	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
