// Package config assembles service configuration from an optional
// darkroom.yaml file overlaid by environment variables. Environment always
// wins, so deployments can override a checked-in file without editing it.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API       APIConfig
	Queue     QueueConfig
	Worker    WorkerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Webhook   WebhookConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type APIConfig struct {
	Addr       string
	PresignTTL time.Duration
}

type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Name          string
}

func (q QueueConfig) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     q.RedisAddr,
		Password: q.RedisPassword,
		DB:       q.RedisDB,
	}
}

type WorkerConfig struct {
	Concurrency     int
	MaxActiveJobs   int
	PipelineWorkers int
	LocalOutputDir  string
	MetricsAddr     string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type DatabaseConfig struct {
	DSN string
}

type WebhookConfig struct {
	SigningSecret string
	Timeout       time.Duration
	MaxAttempts   int
}

type RateLimitConfig struct {
	Enabled      bool
	Capacity     int
	Window       time.Duration
	UserIDHeader string
}

type TelemetryConfig struct {
	Exporter     string
	OTLPEndpoint string
	OTLPInsecure bool
}

// fileConfig mirrors darkroom.yaml. Only a subset of settings makes sense in
// a checked-in file; secrets stay in the environment.
type fileConfig struct {
	API struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
	Queue struct {
		RedisAddr string `yaml:"redis_addr"`
		Name      string `yaml:"name"`
	} `yaml:"queue"`
	Worker struct {
		Concurrency     int    `yaml:"concurrency"`
		MaxActiveJobs   int    `yaml:"max_active_jobs"`
		PipelineWorkers int    `yaml:"pipeline_workers"`
		LocalOutputDir  string `yaml:"local_output_dir"`
		MetricsAddr     string `yaml:"metrics_addr"`
	} `yaml:"worker"`
	Storage struct {
		Endpoint string `yaml:"endpoint"`
		Bucket   string `yaml:"bucket"`
	} `yaml:"storage"`
	Telemetry struct {
		Exporter     string `yaml:"exporter"`
		OTLPEndpoint string `yaml:"otlp_endpoint"`
	} `yaml:"telemetry"`
}

// Load builds the configuration. The file at DARKROOM_CONFIG (default
// ./darkroom.yaml) is optional; a missing file is not an error.
func Load() (Config, error) {
	file, err := loadFile(env("DARKROOM_CONFIG", "darkroom.yaml"))
	if err != nil {
		return Config{}, err
	}

	defaultWorkerSlots := max(1, runtime.NumCPU()/2)

	cfg := Config{
		API: APIConfig{
			Addr:       env("DARKROOM_API_ADDR", or(file.API.Addr, ":8080")),
			PresignTTL: envDuration("DARKROOM_PRESIGN_TTL", 15*time.Minute),
		},
		Queue: QueueConfig{
			RedisAddr:     env("REDIS_ADDR", or(file.Queue.RedisAddr, "localhost:6379")),
			RedisPassword: env("REDIS_PASSWORD", ""),
			RedisDB:       envInt("REDIS_DB", 0),
			Name:          env("ASYNQ_QUEUE", or(file.Queue.Name, "default")),
		},
		Worker: WorkerConfig{
			Concurrency:     envInt("WORKER_CONCURRENCY", orInt(file.Worker.Concurrency, max(2, runtime.NumCPU()))),
			MaxActiveJobs:   envInt("WORKER_MAX_ACTIVE_JOBS", orInt(file.Worker.MaxActiveJobs, defaultWorkerSlots)),
			PipelineWorkers: envInt("WORKER_PIPELINE_WORKERS", file.Worker.PipelineWorkers),
			LocalOutputDir:  env("WORKER_LOCAL_OUTPUT_DIR", or(file.Worker.LocalOutputDir, "./.darkroom-output")),
			MetricsAddr:     env("WORKER_METRICS_ADDR", or(file.Worker.MetricsAddr, ":9090")),
		},
		Storage: StorageConfig{
			Endpoint:  env("MINIO_ENDPOINT", or(file.Storage.Endpoint, "localhost:9000")),
			AccessKey: env("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: env("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    env("MINIO_BUCKET", or(file.Storage.Bucket, "darkroom-jobs")),
			UseSSL:    envBool("MINIO_USE_SSL", false),
		},
		Database: DatabaseConfig{
			// Empty means no database; the binaries fall back to the
			// in-memory job store for local development.
			DSN: env("POSTGRES_DSN", ""),
		},
		Webhook: WebhookConfig{
			SigningSecret: env("DARKROOM_WEBHOOK_SECRET", ""),
			Timeout:       envDuration("DARKROOM_WEBHOOK_TIMEOUT", 10*time.Second),
			MaxAttempts:   envInt("DARKROOM_WEBHOOK_MAX_ATTEMPTS", 3),
		},
		RateLimit: RateLimitConfig{
			Enabled:      envBool("DARKROOM_RATE_LIMIT_ENABLED", true),
			Capacity:     envInt("DARKROOM_RATE_LIMIT_CAPACITY", 30),
			Window:       envDuration("DARKROOM_RATE_LIMIT_WINDOW", time.Minute),
			UserIDHeader: env("DARKROOM_RATE_LIMIT_USER_HEADER", "X-User-ID"),
		},
		Telemetry: TelemetryConfig{
			Exporter:     env("DARKROOM_TRACE_EXPORTER", or(file.Telemetry.Exporter, "none")),
			OTLPEndpoint: env("OTLP_ENDPOINT", file.Telemetry.OTLPEndpoint),
			OTLPInsecure: envBool("OTLP_INSECURE", false),
		},
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func env(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
