// Package cache memoizes rendered calculator responses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/constants"
	"go.uber.org/zap"
)

// Cache stores response bodies by key. A miss is reported with ok == false
// and a nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Config selects and sizes the cache backend.
type Config struct {
	Backend  string        `yaml:"backend"`
	Address  string        `yaml:"address"`
	TTL      time.Duration `yaml:"ttl"`
	Capacity int           `yaml:"capacity"`
}

// New builds the configured backend. An empty backend disables caching. The
// redis backend is pinged so that a bad address fails at startup.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTLSeconds * time.Second
	}

	switch cfg.Backend {
	case "", constants.CacheBackendNone:
		return Nop{}, nil
	case constants.CacheBackendMemory:
		capacity := cfg.Capacity
		if capacity <= 0 {
			capacity = constants.DefaultCacheCapacity
		}
		logger.Info("using in-memory response cache",
			zap.String("op", "cache.New"),
			zap.Int("capacity", capacity),
			zap.Duration("ttl", ttl),
		)
		return NewMemory(capacity, ttl), nil
	case constants.CacheBackendRedis:
		if cfg.Address == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		r := NewRedis(cfg.Address, ttl)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("redis cache at %s unreachable: %w", cfg.Address, err)
		}
		logger.Info("using redis response cache",
			zap.String("op", "cache.New"),
			zap.String("address", cfg.Address),
			zap.Duration("ttl", ttl),
		)
		return r, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key derives a stable key from a calculator slug, a variant such as the
// response format, and the input values.
func Key(slug, variant string, values calculator.Values) string {
	var b strings.Builder
	b.WriteString(slug)
	b.WriteByte('|')
	b.WriteString(variant)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(values[k], 'g', -1, 64))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "fincalc:" + slug + ":" + hex.EncodeToString(sum[:16])
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error         { return nil }
func (Nop) Close() error                                      { return nil }
