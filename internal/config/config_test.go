package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netcmp.yaml")
	data := `
run:
  retries: 2
  fail_fast: true
cache:
  codec: lz4
  size: 8
log:
  format: json
resources:
  memory_limit: 256MB
store:
  kind: s3
  bucket: nets
  region: eu-west-1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Run.Retries)
	assert.True(t, cfg.Run.FailFast)
	assert.Equal(t, 1000, cfg.Run.ProgressInterval, "unset keys keep defaults")
	assert.Equal(t, "lz4", cfg.Cache.Codec)
	assert.Equal(t, 8, cfg.Cache.Size)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, StoreS3, cfg.Store.Kind)
	assert.Equal(t, "nets", cfg.Store.Bucket)

	n, err := ParseSize(cfg.Resources.MemoryLimit)
	require.NoError(t, err)
	assert.Equal(t, int64(256<<20), n)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("NETCMP_LOG_LEVEL", "debug")
	t.Setenv("NETCMP_RETRIES", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Run.Retries)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative retries", func(c *Config) { c.Run.Retries = -1 }},
		{"unknown codec", func(c *Config) { c.Cache.Codec = "brotli" }},
		{"zero cache", func(c *Config) { c.Cache.Size = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"memory limit", func(c *Config) { c.Resources.MemoryLimit = "lots" }},
		{"store kind", func(c *Config) { c.Store.Kind = "ftp" }},
		{"s3 bucket", func(c *Config) { c.Store.Kind = StoreS3 }},
		{"minio endpoint", func(c *Config) { c.Store.Kind = StoreMinio; c.Store.Bucket = "b" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":     0,
		"0":    0,
		"100":  100,
		"100B": 100,
		"2KB":  2 << 10,
		"1gb":  1 << 30,
		"3 MB": 3 << 20,
		"1TB":  1 << 40,
	}
	for in, want := range tests {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"x", "-1MB", "1.5GB"} {
		_, err := ParseSize(in)
		assert.Error(t, err, in)
	}
}
