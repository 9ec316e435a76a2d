package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	StorageS3    = "s3"
	StorageLocal = "local"

	UploadMemory = "memory"
	UploadDisk   = "disk"
)

type Config struct {
	Host string `env:"HOST" env-default:"0.0.0.0"`
	Port string `env:"PORT" env-default:"3000"`

	StoreDriver      string `env:"STORE_DRIVER" env-default:"mongo"`
	MongoURI         string `env:"MONGODB_URI"`
	MongoDatabase    string `env:"MONGODB_DATABASE" env-default:"blog"`
	StorageDriver    string `env:"STORAGE_DRIVER" env-default:"s3"`
	StorageBucket    string `env:"STORAGE_BUCKET"`
	StorageRegion    string `env:"STORAGE_REGION" env-default:"us-east-1"`
	StorageEndpoint  string `env:"STORAGE_ENDPOINT"`
	StorageAccessKey string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `env:"STORAGE_SECRET_KEY"`
	LocalStorageDir  string `env:"LOCAL_STORAGE_DIR" env-default:"./static/uploads"`

	UploadStrategy string `env:"UPLOAD_STRATEGY" env-default:"memory"`
	UploadDir      string `env:"UPLOAD_DIR" env-default:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`

	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" env-default:"30s"`
	NATSURL   string        `env:"NATS_URL"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" env-default:"postapi"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`

	BreakerThreshold int           `env:"BREAKER_THRESHOLD" env-default:"5"`
	BreakerCooldown  time.Duration `env:"BREAKER_COOLDOWN" env-default:"30s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads an optional .env file and then the environment.
// Variables already present in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(f)
	}

	var cfg Config

	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for store driver %q", StoreMongo)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.StorageDriver {
	case StorageS3:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for storage driver %q", StorageS3)
		}
		if (c.StorageAccessKey == "") != (c.StorageSecretKey == "") {
			return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY must be set together")
		}
	case StorageLocal:
		if c.LocalStorageDir == "" {
			return fmt.Errorf("LOCAL_STORAGE_DIR is required for storage driver %q", StorageLocal)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.UploadStrategy {
	case UploadMemory, UploadDisk:
	default:
		return fmt.Errorf("unsupported UPLOAD_STRATEGY %q", c.UploadStrategy)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// StorageBucketName accepts both "name" and the "gs://name" / "s3://name" form.
func (c *Config) StorageBucketName() string {
	b := c.StorageBucket
	for _, scheme := range []string{"gs://", "s3://"} {
		b = strings.TrimPrefix(b, scheme)
	}
	return strings.TrimSuffix(b, "/")
}
