package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/esquery/internal/db"
	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/pkg/dsl"
)

func TestSearch_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchFn = func(_ context.Context, index string, body []byte) ([]byte, error) {
		if index != "events" {
			t.Errorf("unexpected index: %s", index)
		}
		want := `{"query":{"filtered":{"filter":{"term":{"city":"paris"}}}},"size":10}`
		if string(body) != want {
			t.Errorf("body = %s\nwant  %s", body, want)
		}
		return []byte(`{"took":3,"hits":{"total":1,"max_score":1.0,"hits":[
			{"_index":"events","_type":"event","_id":"e1","_score":1.0,"_source":{"city":"paris"}}
		]}}`), nil
	}

	req := mustBuild(t, request.NewBuilder().
		AddFilter(dsl.NewTermFilter("city", "paris")).
		SetMaxResults(10))

	set, err := repo.Search(context.Background(), "events", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Total != 1 || len(set.Hits) != 1 {
		t.Fatalf("total=%d hits=%d, want 1/1", set.Total, len(set.Hits))
	}
	if set.Hits[0].ID() != "e1" {
		t.Errorf("expected ID e1, got %s", set.Hits[0].ID())
	}
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "index not found",
			err:  &db.Error{Op: db.OpSearch, Err: &db.ResponseError{Status: 404, Type: "index_not_found_exception"}},
			want: domain.ErrIndexNotFound,
		},
		{
			name: "rejected",
			err:  &db.Error{Op: db.OpSearch, Err: &db.ResponseError{Status: 400, Type: "parsing_exception", Reason: "bad"}},
			want: domain.ErrEngineRejected,
		},
		{
			name: "overloaded",
			err:  &db.Error{Op: db.OpSearch, Err: &db.ResponseError{Status: 503}},
			want: domain.ErrEngineUnavailable,
		},
		{
			name: "unreachable",
			err:  &db.Error{Op: db.OpSearch, Err: db.ErrUnavailable},
			want: domain.ErrEngineUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, ms := newTestRepo(t)
			ms.searchFn = func(_ context.Context, _ string, _ []byte) ([]byte, error) {
				return nil, tt.err
			}

			_, err := repo.Search(context.Background(), "events", mustBuild(t, request.NewBuilder()))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSearch_RejectedCarriesReason(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, _ string, _ []byte) ([]byte, error) {
		return nil, &db.ResponseError{Status: 400, Type: "parsing_exception", Reason: "no [query] registered for [foo]"}
	}

	_, err := repo.Search(context.Background(), "events", mustBuild(t, request.NewBuilder()))

	var ee *domain.EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EngineError, got %v", err)
	}
	if ee.Status != 400 || ee.Reason != "no [query] registered for [foo]" {
		t.Errorf("status/reason = %d/%q", ee.Status, ee.Reason)
	}
}

func TestSearch_MalformedResponse(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchFn = func(_ context.Context, _ string, _ []byte) ([]byte, error) {
		return []byte(`not json`), nil
	}

	_, err := repo.Search(context.Background(), "events", mustBuild(t, request.NewBuilder()))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRender_MatchAll(t *testing.T) {
	body, err := Render(mustBuild(t, request.NewBuilder()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{}` {
		t.Errorf("body = %s, want {}", body)
	}
}
