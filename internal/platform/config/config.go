// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	StorageBackendS3    = "s3"
	StorageBackendMinio = "minio"
)

type (
	// Properties is the full service configuration.
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
		TempDir  string `env:"TEMP_DIR"`

		Server  HTTPServerProperties `envPrefix:"HTTP_"`
		Storage StorageProperties    `envPrefix:"STORAGE_"`
		S3      S3Properties         `envPrefix:"S3_"`
		Minio   MinioProperties      `envPrefix:"MINIO_"`
		AWS     AWSProperties        `envPrefix:"AWS_"`
		Redis   RedisProperties      `envPrefix:"REDIS_"`
	}

	HTTPServerProperties struct {
		Port           string        `env:"PORT" envDefault:"8080"`
		AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
		Pprof          bool          `env:"PPROF" envDefault:"false"`
		ClientTimeout  time.Duration `env:"CLIENT_TIMEOUT" envDefault:"30s"`
	}

	StorageProperties struct {
		Backend string `env:"BACKEND" envDefault:"s3"`
	}

	S3Properties struct {
		Bucket       string `env:"BUCKET" envDefault:"ppe-detection-input-v1"`
		Prefix       string `env:"PREFIX" envDefault:"s3-sample-images/"`
		Endpoint     string `env:"ENDPOINT"`
		UsePathStyle bool   `env:"USE_PATH_STYLE" envDefault:"false"`
	}

	MinioProperties struct {
		Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	}

	// AWSProperties only selects region and profile; credentials come from the
	// default provider chain.
	AWSProperties struct {
		Region  string `env:"REGION"`
		Profile string `env:"PROFILE"`
	}

	RedisProperties struct {
		Addr      string        `env:"ADDR"`
		Password  string        `env:"PASSWORD"`
		DB        int           `env:"DB" envDefault:"0"`
		TTL       time.Duration `env:"TTL" envDefault:"24h"`
		Namespace string        `env:"NAMESPACE" envDefault:"ppe"`
	}
)

// Load parses Properties from the environment and validates it.
func Load() (*Properties, error) {
	cfg := &Properties{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (p *Properties) Validate() error {
	switch p.Storage.Backend {
	case StorageBackendS3, StorageBackendMinio:
	default:
		return fmt.Errorf("unknown storage backend %q", p.Storage.Backend)
	}
	if p.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET must not be empty")
	}
	return nil
}

// CacheEnabled reports whether a Redis address is configured.
func (p *Properties) CacheEnabled() bool {
	return p.Redis.Addr != ""
}
