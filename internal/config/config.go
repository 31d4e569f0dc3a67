// Package config loads run configuration from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/netcmp/codec"
)

// Store kinds.
const (
	StoreLocal = "local"
	StoreS3    = "s3"
	StoreMinio = "minio"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Run       RunConfig       `yaml:"run"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
	Resources ResourcesConfig `yaml:"resources"`
	Store     StoreConfig     `yaml:"store"`
}

type RunConfig struct {
	Retries          int  `yaml:"retries"`
	FailFast         bool `yaml:"fail_fast"`
	ProgressInterval int  `yaml:"progress_interval"`
}

type CacheConfig struct {
	Codec string `yaml:"codec"`
	Size  int    `yaml:"size"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ResourcesConfig struct {
	MemoryLimit        string `yaml:"memory_limit"`
	MaxConcurrentLoads int64  `yaml:"max_concurrent_loads"`
	IORateLimit        string `yaml:"io_rate_limit"`
}

type StoreConfig struct {
	Kind      string `yaml:"kind"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Retries:          0,
			FailFast:         false,
			ProgressInterval: 1000,
		},
		Cache: CacheConfig{
			Codec: codec.Default.Name(),
			Size:  64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Resources: ResourcesConfig{
			MemoryLimit:        "1GB",
			MaxConcurrentLoads: 0,
			IORateLimit:        "",
		},
		Store: StoreConfig{
			Kind:   StoreLocal,
			Secure: true,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// not empty) and the NETCMP_* environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("NETCMP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NETCMP_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("NETCMP_CACHE_CODEC"); v != "" {
		cfg.Cache.Codec = v
	}
	if v := os.Getenv("NETCMP_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Retries = n
		}
	}
	if v := os.Getenv("NETCMP_STORE"); v != "" {
		cfg.Store.Kind = v
	}
	if v := os.Getenv("NETCMP_BUCKET"); v != "" {
		cfg.Store.Bucket = v
	}
	if v := os.Getenv("NETCMP_ENDPOINT"); v != "" {
		cfg.Store.Endpoint = v
	}
	if v := os.Getenv("NETCMP_REGION"); v != "" {
		cfg.Store.Region = v
	}
	if v := os.Getenv("NETCMP_ACCESS_KEY"); v != "" {
		cfg.Store.AccessKey = v
	}
	if v := os.Getenv("NETCMP_SECRET_KEY"); v != "" {
		cfg.Store.SecretKey = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Run.Retries < 0 {
		return fmt.Errorf("%w: run.retries must be >= 0, got %d", ErrInvalid, c.Run.Retries)
	}
	if c.Run.ProgressInterval < 0 {
		return fmt.Errorf("%w: run.progress_interval must be >= 0, got %d", ErrInvalid, c.Run.ProgressInterval)
	}
	if _, ok := codec.ByName(c.Cache.Codec); !ok {
		return fmt.Errorf("%w: cache.codec %q (valid: %s)", ErrInvalid, c.Cache.Codec, strings.Join(codec.Names(), ", "))
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("%w: cache.size must be > 0, got %d", ErrInvalid, c.Cache.Size)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if _, err := ParseSize(c.Resources.MemoryLimit); err != nil {
		return fmt.Errorf("%w: resources.memory_limit: %v", ErrInvalid, err)
	}
	if _, err := ParseSize(c.Resources.IORateLimit); err != nil {
		return fmt.Errorf("%w: resources.io_rate_limit: %v", ErrInvalid, err)
	}
	if c.Resources.MaxConcurrentLoads < 0 {
		return fmt.Errorf("%w: resources.max_concurrent_loads must be >= 0", ErrInvalid)
	}
	switch c.Store.Kind {
	case StoreLocal:
	case StoreS3, StoreMinio:
		if c.Store.Bucket == "" {
			return fmt.Errorf("%w: store.bucket is required for %s", ErrInvalid, c.Store.Kind)
		}
		if c.Store.Kind == StoreMinio && c.Store.Endpoint == "" {
			return fmt.Errorf("%w: store.endpoint is required for minio", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: store.kind %q", ErrInvalid, c.Store.Kind)
	}
	return nil
}

var sizeUnits = []struct {
	suffix string
	mult   int64
}{
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"GB", 1 << 30},
	{"TB", 1 << 40},
	{"B", 1},
}

// ParseSize parses sizes like "512MB" or "1GB" into bytes. An empty string
// is 0 (unlimited).
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	mult := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			mult = u.mult
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * mult, nil
}
