package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	Logging       config.LoggingConfig `yaml:"logging"`
	Cache         cache.Config         `yaml:"cache"`
	RateLimit     RateLimitConfig      `yaml:"rateLimit"`

	uploadSizeBytes int64
}

// RateLimitConfig bounds requests per client address. Zero disables the
// limiter.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requestsPerMinute"`
}

func defaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		Cache:           cache.Config{Backend: constants.CacheBackendNone},
		RateLimit:       RateLimitConfig{RequestsPerMinute: constants.DefaultRequestsPerMinute},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig reads the server configuration from a YAML file. A missing file
// or an empty path yields the defaults. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// UploadSizeBytes returns the request body limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if size == 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = constants.CacheBackendNone
	case constants.CacheBackendNone, constants.CacheBackendMemory:
	case constants.CacheBackendRedis:
		if c.Cache.Address == "" {
			return errors.New("cache.address is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 || c.Cache.Capacity < 0 {
		return errors.New("cache.ttl and cache.capacity must not be negative")
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rateLimit.requestsPerMinute must not be negative, got %d", c.RateLimit.RequestsPerMinute)
	}
	return nil
}

var sizeUnits = map[string]float64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// ParseSize converts a size such as "256K", "1.5MB" or "4096" into bytes.
// Units are binary. An empty string yields the default upload limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.LastIndexFunc(trimmed, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '.'
	}) + 1
	if split == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	multiplier, ok := sizeUnits[strings.TrimSpace(trimmed[split:])]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", strings.TrimSpace(trimmed[split:]))
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(trimmed[:split]), 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size value %q", value)
	}

	size := n * multiplier
	if size >= math.MaxInt64 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return int64(size), nil
}
