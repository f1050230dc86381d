package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DARKROOM_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Addr != ":8080" {
		t.Fatalf("expected default api addr :8080, got %s", cfg.API.Addr)
	}
	if cfg.Queue.Name != "default" {
		t.Fatalf("expected default queue name, got %s", cfg.Queue.Name)
	}
	if cfg.Storage.Bucket != "darkroom-jobs" {
		t.Fatalf("expected default bucket, got %s", cfg.Storage.Bucket)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "darkroom.yaml")
	content := []byte(`
api:
  addr: ":9999"
worker:
  pipeline_workers: 4
storage:
  bucket: file-bucket
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DARKROOM_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Addr != ":9999" {
		t.Fatalf("expected file addr :9999, got %s", cfg.API.Addr)
	}
	if cfg.Worker.PipelineWorkers != 4 {
		t.Fatalf("expected 4 pipeline workers, got %d", cfg.Worker.PipelineWorkers)
	}
	if cfg.Storage.Bucket != "file-bucket" {
		t.Fatalf("expected file bucket, got %s", cfg.Storage.Bucket)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "darkroom.yaml")
	if err := os.WriteFile(path, []byte("api:\n  addr: \":9999\"\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DARKROOM_CONFIG", path)
	t.Setenv("DARKROOM_API_ADDR", ":7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Addr != ":7777" {
		t.Fatalf("environment must win over file, got %s", cfg.API.Addr)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "darkroom.yaml")
	if err := os.WriteFile(path, []byte("api: [not a mapping"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DARKROOM_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for malformed yaml")
	}
}
