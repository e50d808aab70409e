package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
	"github.com/kailas-cloud/esquery/internal/logger"
	"github.com/kailas-cloud/esquery/internal/metrics"
	"github.com/kailas-cloud/esquery/pkg/dsl"
)

// Shape labels for composed request metrics.
const (
	shapeNone     = "none"
	shapeLeaf     = "leaf"
	shapeCompound = "compound"
)

// Service composes search requests and executes them against the engine.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Compose finalizes the builder and records the shape of the result.
func (s *Service) Compose(b *request.Builder) (request.Request, error) {
	req, err := b.Build()
	if err != nil {
		return request.Request{}, fmt.Errorf("compose: %w", err)
	}
	metrics.ComposedRequestsTotal.
		WithLabelValues(queryShape(req.Query()), filterShape(req.Filter())).
		Inc()
	return req, nil
}

// Search executes req against index. An empty index searches all indices.
func (s *Service) Search(ctx context.Context, index string, req request.Request) (result.Set, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	set, err := s.repo.Search(ctx, index, req)

	duration := time.Since(start)
	metrics.SearchRequestDuration.Observe(duration.Seconds())
	metrics.SearchRequestsTotal.WithLabelValues(status(err)).Inc()

	if err != nil {
		log.Error("Search failed",
			zap.String("index", index),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return result.Set{}, fmt.Errorf("search %s: %w", index, err)
	}

	log.Debug("Search completed",
		zap.String("index", index),
		zap.Duration("duration", duration),
		zap.Int64("took_ms", set.Took),
		zap.Int64("total", set.Total),
		zap.Int("hits", len(set.Hits)),
	)
	return set, nil
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrIndexNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrEngineRejected):
		return "rejected"
	case errors.Is(err, domain.ErrEngineUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func queryShape(q dsl.Query) string {
	switch q.(type) {
	case nil:
		return shapeNone
	case *dsl.BoolQuery:
		return shapeCompound
	default:
		return shapeLeaf
	}
}

func filterShape(f dsl.Filter) string {
	switch f.(type) {
	case nil:
		return shapeNone
	case *dsl.BoolFilter, *dsl.AndFilter:
		return shapeCompound
	default:
		return shapeLeaf
	}
}
