package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Sogni  SogniConfig
	Render RenderConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type SogniConfig struct {
	BaseURL  string
	Username string
	Password string
}

type RenderConfig struct {
	Model     string
	Steps     int
	Guidance  float64
	Scheduler string

	// 引导图目录与预处理参数
	GuideDir      string
	GuideMaxEdge  int
	GuideStrength float64
	BlurRadius    int // 0 表示跳过模糊，直接缓存原始字节
	Tolerance     float64
}

type CacheConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// New 从环境变量加载配置（.env 可选）
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", ":3042"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Sogni: SogniConfig{
			BaseURL:  getEnv("SOGNI_BASE_URL", "https://api.sogni.ai"),
			Username: getEnv("SOGNI_USERNAME", ""),
			Password: getEnv("SOGNI_PASSWORD", ""),
		},
		Render: RenderConfig{
			Model:         getEnv("SOGNI_MODEL", "coreml-sogniXLturbo_alpha1_ad"),
			Steps:         getEnvInt("RENDER_STEPS", 4),
			Guidance:      getEnvFloat("RENDER_GUIDANCE", 1),
			Scheduler:     getEnv("RENDER_SCHEDULER", "DPM Solver Multistep (DPM-Solver++)"),
			GuideDir:      getEnv("GUIDE_DIR", "./guides"),
			GuideMaxEdge:  getEnvInt("GUIDE_MAX_EDGE", 512),
			GuideStrength: getEnvFloat("GUIDE_STRENGTH", 0.3),
			BlurRadius:    getEnvInt("GUIDE_BLUR_RADIUS", 40),
			Tolerance:     getEnvFloat("CUTOUT_TOLERANCE", 30),
		},
		Cache: CacheConfig{
			TTL:           getEnvDuration("CACHE_TTL", time.Hour),
			SweepSchedule: getEnv("CACHE_SWEEP", "@every 10m"),
		},
	}
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
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
