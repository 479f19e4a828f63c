// Package redis wraps the go-redis client used for shared preset storage
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/deck-api/internal/errors"
)

// Client is the command surface the preset store needs. Single instance and
// cluster clients both satisfy it.
type Client interface {
	redis.UniversalClient
}

// Options configures Redis client behavior
type Options struct {
	Password        string
	DB              int // ignored in cluster mode
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

func (o *Options) tlsConfig() *tls.Config {
	if !o.UseTLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// New creates a single-instance client for one address and a cluster
// client for several
func New(addrs []string, opts *Options) (Client, error) {
	switch len(addrs) {
	case 0:
		return nil, errors.InvalidArgument("redis: at least one address is required")
	case 1:
		return NewClient(addrs[0], opts)
	default:
		return NewClusterClient(addrs, opts)
	}
}

// NewClient creates a Redis client for a single instance.
// Connections are established lazily.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis: endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:            endpoint,
		Password:        opts.Password,
		DB:              opts.DB,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// NewClusterClient creates a Redis client for cluster mode
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.InvalidArgument("redis: at least one endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:           endpoints,
		Password:        opts.Password,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// Ping checks that the server answers
func Ping(ctx context.Context, c Client) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
	}
	return nil
}
