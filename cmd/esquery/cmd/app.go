package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esquery/internal/config"
	"github.com/kailas-cloud/esquery/internal/db"
	"github.com/kailas-cloud/esquery/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/esquery/internal/db/redis"
	"github.com/kailas-cloud/esquery/internal/metrics"
	"github.com/kailas-cloud/esquery/internal/repository/rescache"
	searchrepo "github.com/kailas-cloud/esquery/internal/repository/search"
	healthuc "github.com/kailas-cloud/esquery/internal/usecase/health"
	searchuc "github.com/kailas-cloud/esquery/internal/usecase/search"
)

// app is the composition root shared by search and serve.
type app struct {
	engine *elastic.Store
	cache  *dbRedis.Store
	search *searchuc.Service
	health *healthuc.Service
}

// newApp connects the engine (and the response cache when enabled) and
// assembles the services. waitReady blocks until the backends answer.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, waitReady bool) (*app, error) {
	metrics.RegisterSearchMetrics()

	engine, err := elastic.NewStore(elastic.Config{
		Addrs:      cfg.Elasticsearch.Addrs,
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		Timeout:    cfg.Elasticsearch.Timeout(),
		MaxRetries: cfg.Elasticsearch.MaxRetries,
		RetryDelay: cfg.Elasticsearch.RetryDelay(),
	})
	if err != nil {
		return nil, fmt.Errorf("create engine store: %w", err)
	}

	readiness := time.Duration(cfg.Elasticsearch.ReadinessTimeout) * time.Second
	if waitReady {
		if err := engine.WaitForReady(ctx, readiness); err != nil {
			return nil, fmt.Errorf("engine not ready: %w", err)
		}
		logger.Info("Connected to search engine", zap.Strings("addrs", cfg.Elasticsearch.Addrs))
	}

	a := &app{engine: engine}

	var searcher db.Searcher = engine
	if cfg.Cache.Enabled {
		a.cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		if waitReady {
			if err := a.cache.WaitForReady(ctx, readiness); err != nil {
				a.cache.Close()
				return nil, fmt.Errorf("cache not ready: %w", err)
			}
			logger.Info("Connected to response cache", zap.Strings("addrs", cfg.Cache.Addrs))
		}
		searcher = rescache.New(searcher, a.cache, cfg.Cache.KeyPrefix, cfg.Cache.TTL(), metrics.SearchCacheTotal, logger)
	}

	a.search = searchuc.New(searchrepo.New(searcher))

	// Pass nil interface (not typed nil pointer) when the cache is off.
	var cachePinger healthuc.Pinger
	if a.cache != nil {
		cachePinger = a.cache
	}
	a.health = healthuc.New(engine, cachePinger)

	return a, nil
}

// Close releases backend connections.
func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
