package esquery

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs      []string
	username   string
	password   string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration
	cachePrefix   string

	skipReadiness bool
	logger        *zap.Logger
}

// WithElasticsearch sets the engine node addresses. Requests rotate
// across them. Scheme defaults to http.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append(c.addrs, addrs...)
	})
}

// WithBasicAuth sets HTTP basic credentials for the engine.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithTimeout sets the per-attempt request timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRetry sets how many times a failed request is attempted and the
// initial backoff between attempts. Only transport errors and 429/5xx
// gateway responses are retried. Default: 3 attempts, 100ms.
func WithRetry(attempts int, delay time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRetries = attempts
		c.retryDelay = delay
	})
}

// WithRedisCache caches raw engine responses in Redis for ttl.
// Identical requests against the same index are served from the cache.
func WithRedisCache(addrs []string, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithCachePrefix sets the key prefix of cached responses. Default: "esquery:".
func WithCachePrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cachePrefix = prefix
	})
}

// WithoutReadinessCheck makes New return without waiting for the backends.
func WithoutReadinessCheck() Option {
	return optionFunc(func(c *clientConfig) {
		c.skipReadiness = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
