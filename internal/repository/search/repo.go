package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/esquery/internal/db"
	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, index string, body []byte) ([]byte, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Render encodes the request as an engine search body.
func Render(req request.Request) ([]byte, error) {
	body, err := json.Marshal(req.Source())
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	return body, nil
}

// Search executes req against index and parses the engine response.
func (r *Repo) Search(ctx context.Context, index string, req request.Request) (result.Set, error) {
	body, err := Render(req)
	if err != nil {
		return result.Set{}, err
	}

	raw, err := r.store.Search(ctx, index, body)
	if err != nil {
		return result.Set{}, mapError(index, err)
	}

	set, err := result.Parse(raw)
	if err != nil {
		return result.Set{}, fmt.Errorf("search %s: %w", index, err)
	}
	return set, nil
}

// mapError translates storage errors into domain errors.
func mapError(index string, err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrIndexNotFound, index)
	}
	var re *db.ResponseError
	if errors.As(err, &re) {
		sentinel := domain.ErrEngineRejected
		if re.Status >= 500 || re.Status == 429 {
			sentinel = domain.ErrEngineUnavailable
		}
		return domain.NewEngineError(sentinel, re.Status, re.Type, re.Reason)
	}
	if errors.Is(err, db.ErrUnavailable) {
		return fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
	}
	return fmt.Errorf("search %s: %w", index, err)
}
