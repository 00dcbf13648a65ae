// Package config loads and validates the indexer's YAML configuration,
// with environment overrides, in the shape
// minis/50-mini-service-all-features/internal/config/config.go lays out.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Indexer  IndexerConfig  `yaml:"indexer"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SourceConfig struct {
	Bucket               string  `yaml:"bucket"`
	Region               string  `yaml:"region"`
	StartBlockHeight     uint64  `yaml:"start_block_height"`
	MaxRequestsPerSecond float64 `yaml:"max_requests_per_second"`
	Burst                int     `yaml:"burst"`
}

type IndexerConfig struct {
	StrictMode     bool `yaml:"strict_mode"`
	DebugLogs      bool `yaml:"debug_logs"`
	BatchChunkSize int  `yaml:"batch_chunk_size"`
	CacheCapacity  int  `yaml:"cache_capacity"`
}

type DatabaseConfig struct {
	URL              string `yaml:"url"`
	RetryCount       int    `yaml:"retry_count"`
	RetryBaseDelayMS int    `yaml:"retry_base_delay_ms"`
	RetryMaxDelayMS  int    `yaml:"retry_max_delay_ms"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from configPath, applies environment overrides, and
// validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", configPath, err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("STRICT_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Indexer.StrictMode = b
		}
	}
	if v := os.Getenv("START_BLOCK_HEIGHT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Source.StartBlockHeight = n
		}
	}
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Source.Bucket == "" {
		return fmt.Errorf("source.bucket is required")
	}
	if c.Source.MaxRequestsPerSecond <= 0 {
		c.Source.MaxRequestsPerSecond = 50
	}
	if c.Source.Burst <= 0 {
		c.Source.Burst = 100
	}
	if c.Indexer.BatchChunkSize <= 0 {
		c.Indexer.BatchChunkSize = 500
	}
	if c.Indexer.CacheCapacity <= 0 {
		c.Indexer.CacheCapacity = 100_000
	}
	if c.Database.RetryCount <= 0 {
		c.Database.RetryCount = 10
	}
	if c.Database.RetryBaseDelayMS <= 0 {
		c.Database.RetryBaseDelayMS = 100
	}
	if c.Database.RetryMaxDelayMS <= 0 {
		c.Database.RetryMaxDelayMS = 5000
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	return nil
}
