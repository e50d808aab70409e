package esquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esquery/internal/db"
	"github.com/kailas-cloud/esquery/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/esquery/internal/db/redis"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/logger"
	"github.com/kailas-cloud/esquery/internal/metrics"
	"github.com/kailas-cloud/esquery/internal/repository/rescache"
	searchrepo "github.com/kailas-cloud/esquery/internal/repository/search"
	searchuc "github.com/kailas-cloud/esquery/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCachePrefix      = "esquery:"
)

// Client is the esquery SDK entry point.
type Client struct {
	engine    *elastic.Store
	cache     *dbRedis.Store
	searchSvc *searchuc.Service
	logger    *zap.Logger
}

// New creates a Client and waits for the engine to answer.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("esquery: engine address required (use WithElasticsearch)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	engine, err := elastic.NewStore(elastic.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		Timeout:    cfg.timeout,
		MaxRetries: cfg.maxRetries,
		RetryDelay: cfg.retryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("esquery: create engine store: %w", err)
	}

	ctx := context.Background()
	if !cfg.skipReadiness {
		if err := engine.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			return nil, fmt.Errorf("esquery: engine not ready: %w", err)
		}
	}

	c := &Client{engine: engine, logger: cfg.logger}

	var searcher db.Searcher = engine
	if len(cfg.cacheAddrs) > 0 {
		c.cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("esquery: create cache store: %w", err)
		}
		if !cfg.skipReadiness {
			if err := c.cache.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
				c.cache.Close()
				return nil, fmt.Errorf("esquery: cache not ready: %w", err)
			}
		}
		prefix := cfg.cachePrefix
		if prefix == "" {
			prefix = defaultCachePrefix
		}
		searcher = rescache.New(searcher, c.cache, prefix, cfg.cacheTTL, metrics.SearchCacheTotal, cfg.logger)
	}

	c.searchSvc = searchuc.New(searchrepo.New(searcher))
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Index returns a handle for searching one index. Use "" or "_all" to
// search every index.
func (c *Client) Index(name string) *Index {
	if name == "_all" {
		name = ""
	}
	return &Index{name: name, client: c}
}

// Search executes a built request against index.
func (c *Client) Search(ctx context.Context, index string, req Request) (*Result, error) {
	ctx = logger.ContextWithLogger(ctx, c.logger.With(zap.String("index", index)))
	set, err := c.searchSvc.Search(ctx, index, req)
	if err != nil {
		return nil, err
	}
	return newResult(set), nil
}

// Index is a search handle bound to one index.
type Index struct {
	name   string
	client *Client
}

// Name returns the index name, "" meaning all indices.
func (idx *Index) Name() string { return idx.name }

// Query starts a request against this index.
func (idx *Index) Query() *QueryBuilder {
	return &QueryBuilder{b: request.NewBuilder(), idx: idx}
}
