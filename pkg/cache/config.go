package cache

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
)

// Backends accepted by Open.
const (
	BackendNone    = "none"
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendLayered = "layered"
)

// RedisOptions locates the shared cache server.
type RedisOptions struct {
	Host         string `default:"localhost"`
	Port         int    `default:"6379"`
	Password     string
	DB           int
	Prefix       string        `default:"moverscan"`
	PoolSize     int           `default:"10"`
	MinIdleConns int           `default:"2"`
	PingTimeout  time.Duration `default:"5s"`
}

// Options selects and sizes the provider response cache.
type Options struct {
	Backend    string `default:"none"`
	MemorySize int    `default:"1000"`
	// L1TTL caps how long the layered backend keeps an entry in process.
	L1TTL time.Duration `default:"5s"`
	Redis RedisOptions
}

// Open builds the cache named by opts.Backend. The none backend returns a
// nil Service.
func Open(opts Options) (Service, error) {
	if err := defaults.Set(&opts); err != nil {
		return nil, fmt.Errorf("cache defaults: %w", err)
	}

	switch opts.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemoryCache(opts.MemorySize), nil
	case BackendRedis:
		rc, err := NewRedisCache(opts.Redis)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendLayered:
		rc, err := NewRedisCache(opts.Redis)
		if err != nil {
			return nil, err
		}
		return NewLayeredCache(rc, opts.MemorySize, opts.L1TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
