package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	// APIKeyEnv is the environment variable holding the generative AI key.
	// Its absence is a startup error, not a deep call-site failure.
	APIKeyEnv = "GOOGLE_API_KEY"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName    string          `yaml:"service_name" validate:"required"`
	LogLevel       string          `yaml:"loglevel" validate:"required"`
	Host           string          `yaml:"host" validate:"required"`
	Port           string          `yaml:"port" validate:"required"`
	PrivateKeyPath string          `yaml:"private_key_path" validate:"required"`
	Store          Store           `yaml:"store" validate:"required"`
	Generator      GeneratorConfig `yaml:"generator" validate:"required"`
	DocIndex       DocIndexConfig  `yaml:"doc_index"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// Store selects and configures the credential store backend.
type Store struct {
	Type string `yaml:"type" validate:"required,oneof=file mongo postgres"`
	// For the JSON file backend
	File FileStoreConfig `yaml:"file_config" validate:"omitempty"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"omitempty"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
}

// FileStoreConfig configures the flat JSON credential file.
type FileStoreConfig struct {
	Path string `yaml:"path"`
	// LockRetry bounds how long a writer waits on the advisory lockfile.
	LockRetry   time.Duration `yaml:"lock_retry"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

type MongoDBConfig struct {
	DSN          string        `yaml:"dsn" validate:"omitempty"`
	DatabaseName string        `yaml:"database_name" validate:"omitempty"`
	Collection   string        `yaml:"collection"`
	Timeout      time.Duration `yaml:"timeout"`
}

type PostgresConfig struct {
	DSN             string        `yaml:"dsn" validate:"omitempty"`
	Table           string        `yaml:"table"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GeneratorConfig configures the generative-text client.
type GeneratorConfig struct {
	Model          string        `yaml:"model" validate:"required"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
}

// DocIndexConfig configures document ingestion and the similarity index.
type DocIndexConfig struct {
	Path         string `yaml:"path"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	TopK         int    `yaml:"top_k"`
}

// RateLimitConfig configures the login rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the
// specified path and unmarshals it into a ServiceConfig.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// APIKey reads the generative AI key from the environment. Called once at
// startup so a missing key fails fast with an actionable error.
func APIKey() (string, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s is not set: export the generative AI API key before starting the service", APIKeyEnv)
	}
	return key, nil
}
