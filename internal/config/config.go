package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ChartPath        string
	OutputDir        string
	Axes             string
	VisibleTimeRange float64
	PostTime         float64
	StartTime        float64
	EndTime          float64
	Width            int
	Height           int
	FPS              int
	Workers          int
	Addr             string
	LogLevel         string
	LogFormat        string
	ShowStats        bool
	BuildVersion     string
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		OutputDir:        "output",
		Axes:             "", // use the chart's axes
		VisibleTimeRange: 1000,
		PostTime:         500,
		Width:            480,
		Height:           800,
		FPS:              60,
		Workers:          runtime.NumCPU(),
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        "text",
		BuildVersion:     "dev",
	}
}

// Load reads .env files into the environment and applies OSUSCROLL_*
// variables on top of the defaults. A missing .env is not an error.
func Load(paths ...string) *Config {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	_ = godotenv.Load(paths...)

	cfg := Default()
	cfg.ChartPath = GetEnv("OSUSCROLL_CHART", cfg.ChartPath)
	cfg.OutputDir = GetEnv("OSUSCROLL_OUTPUT_DIR", cfg.OutputDir)
	cfg.Axes = GetEnv("OSUSCROLL_AXES", cfg.Axes)
	cfg.VisibleTimeRange = GetEnvFloat("OSUSCROLL_VISIBLE_TIME_RANGE", cfg.VisibleTimeRange)
	cfg.PostTime = GetEnvFloat("OSUSCROLL_POST_TIME", cfg.PostTime)
	cfg.Width = GetEnvInt("OSUSCROLL_WIDTH", cfg.Width)
	cfg.Height = GetEnvInt("OSUSCROLL_HEIGHT", cfg.Height)
	cfg.FPS = GetEnvInt("OSUSCROLL_FPS", cfg.FPS)
	cfg.Workers = GetEnvInt("OSUSCROLL_WORKERS", cfg.Workers)
	cfg.Addr = GetEnv("OSUSCROLL_ADDR", cfg.Addr)
	cfg.LogLevel = GetEnv("OSUSCROLL_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = GetEnv("OSUSCROLL_LOG_FORMAT", cfg.LogFormat)
	cfg.ShowStats = GetEnvBool("OSUSCROLL_SHOW_STATS", cfg.ShowStats)
	return cfg
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func GetEnvFloat(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	if s := os.Getenv(key); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return fallback
}
