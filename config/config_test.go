package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "REDIS_ADDR", "REDIS_DB", "DATASET_TTL", "MAX_UPLOAD_MB", "SEED_SAMPLE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" || cfg.RedisAddr != "127.0.0.1:6379" || cfg.RedisDB != 8 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DatasetTTL != 24*time.Hour || cfg.MaxUploadMB != 32 || cfg.SeedSample {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATASET_TTL", "90m")
	t.Setenv("SEED_SAMPLE", "yes")
	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" || cfg.RedisDB != 3 || cfg.DatasetTTL != 90*time.Minute || !cfg.SeedSample {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "eight")
	t.Setenv("DATASET_TTL", "-1h")
	cfg := FromEnv()
	if cfg.RedisDB != 8 || cfg.DatasetTTL != 24*time.Hour {
		t.Fatalf("bad values should fall back: %+v", cfg)
	}
}
