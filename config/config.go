package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings read from the environment
type Config struct {
	HTTPAddr string
	GinMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatasetTTL  time.Duration // How long an uploaded dataset stays cached
	MaxUploadMB int64
	SeedSample  bool // Seed a sample dataset when the cache is empty
}

// Load reads a .env file if one exists, then the environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and defaults")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		GinMode:       envOr("GIN_MODE", "debug"),
		RedisAddr:     envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 8),
		DatasetTTL:    envDuration("DATASET_TTL", 24*time.Hour),
		MaxUploadMB:   int64(envInt("MAX_UPLOAD_MB", 32)),
		SeedSample:    envBool("SEED_SAMPLE", false),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", k, v, def)
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using default %s", k, v, def)
		return def
	}
	return d
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
