package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"ENV", "PORT", "PRIMARY_STORE", "FALLBACK_STORE", "DATABASE_URL", "MINIO_USE_SSL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.PrimaryStore != StoreNone {
		t.Fatalf("expected primary store none, got %q", cfg.PrimaryStore)
	}
	if cfg.FallbackStore != StoreLocal {
		t.Fatalf("expected fallback store local, got %q", cfg.FallbackStore)
	}
	if !cfg.IsDevLike() {
		t.Fatalf("expected dev-like config")
	}
}

func TestLoadNormalizesStoresAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("PRIMARY_STORE", " S3 ")
	t.Setenv("FALLBACK_STORE", "gcs")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPLOAD_RATE_PER_SEC", "2.5")
	t.Setenv("UPLOAD_RATE_BURST", "nope")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.PrimaryStore != StoreS3 {
		t.Fatalf("expected s3, got %q", cfg.PrimaryStore)
	}
	if cfg.FallbackStore != StoreNone {
		t.Fatalf("expected unknown fallback to normalize to none, got %q", cfg.FallbackStore)
	}
	if !cfg.MinIOUseSSL {
		t.Fatalf("expected MinIOUseSSL true")
	}
	if cfg.UploadRatePerSecond != 2.5 {
		t.Fatalf("expected rate 2.5, got %v", cfg.UploadRatePerSecond)
	}
	if cfg.UploadRateBurst != 0 {
		t.Fatalf("expected invalid burst to fall back to 0, got %d", cfg.UploadRateBurst)
	}
	if cfg.IsDevLike() {
		t.Fatalf("production must not be dev-like")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("MINIO_BUCKET", "")
	os.Unsetenv("MINIO_BUCKET")
	t.Setenv("S3_BUCKET", "from-env")

	content := "MINIO_BUCKET=from-file\nS3_BUCKET=ignored\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg := Load()
	if cfg.MinIOBucket != "from-file" {
		t.Fatalf("expected bucket from .env, got %q", cfg.MinIOBucket)
	}
	if cfg.S3Bucket != "from-env" {
		t.Fatalf("expected env var to win over .env, got %q", cfg.S3Bucket)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
