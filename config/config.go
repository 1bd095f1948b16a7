package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port         string
	WebIndexFile string // HTML client page served at "/"

	MaxUploadSize  int64 // per-request body limit in bytes
	MaxStoreSize   int64 // total bytes held in blob storage, 0 = unlimited
	AudioOnly      bool  // reject uploads whose content type is known and not audio
	SeedDemoTracks bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	LogLevel      string
	LogFile       string // empty = stdout only
	LogMaxSize    int    // megabytes
	LogMaxBackups int
	LogMaxAge     int // days
	LogCompress   bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvBytes parses sizes such as "32MiB", "512 MB" or "1048576".
func getEnvBytes(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := humanize.ParseBytes(strings.TrimSpace(value)); err == nil {
			return int64(n)
		}
		log.Printf("Invalid size %q for %s, using default %s", value, key, humanize.IBytes(uint64(fallback)))
	}
	return fallback
}

// getEnvDuration parses durations such as "30s" or "2m".
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() does not override variables that are already set.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without reading .env.
func FromEnv() *Config {
	port := getEnv("PORT", "5000")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &Config{
		Port:         port,
		WebIndexFile: getEnv("WEB_INDEX_FILE", "web/ui/index.html"),

		MaxUploadSize:  getEnvBytes("MAX_UPLOAD_SIZE", 32<<20),
		MaxStoreSize:   getEnvBytes("MAX_STORE_SIZE", 512<<20),
		AudioOnly:      getEnvBool("AUDIO_ONLY", false),
		SeedDemoTracks: getEnvBool("SEED_DEMO_TRACKS", false),

		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("IDLE_TIMEOUT", 120*time.Second),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", false),
	}
}
