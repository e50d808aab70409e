package elastic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/esquery/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = 100 * time.Millisecond
	maxErrorBody      = 64 << 10
)

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	Addrs      []string
	Username   string
	Password   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Store executes search bodies over the engine's HTTP API.
type Store struct {
	addrs      []string
	username   string
	password   string
	client     *http.Client
	maxRetries uint
	retryDelay time.Duration
	next       atomic.Uint64
}

// NewStore creates an engine store. Addresses are tried round-robin.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	addrs := make([]string, 0, len(cfg.Addrs))
	for _, a := range cfg.Addrs {
		a = strings.TrimRight(strings.TrimSpace(a), "/")
		if a == "" {
			continue
		}
		if !strings.Contains(a, "://") {
			a = "http://" + a
		}
		addrs = append(addrs, a)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultRetries
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	return &Store{
		addrs:      addrs,
		username:   cfg.Username,
		password:   cfg.Password,
		client:     &http.Client{Timeout: timeout},
		maxRetries: uint(retries),
		retryDelay: delay,
	}, nil
}

// Search posts body to {index}/_search and returns the raw response.
func (s *Store) Search(ctx context.Context, index string, body []byte) ([]byte, error) {
	path := "/_search"
	if index != "" {
		path = "/" + index + "/_search"
	}
	data, err := s.roundTrip(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return data, nil
}

// Ping checks that the cluster answers its root endpoint.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.roundTrip(ctx, http.MethodGet, "/", nil); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var out []byte
	err := retry.Do(
		func() error {
			data, err := s.once(ctx, method, path, body)
			if err != nil {
				return err
			}
			out = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.maxRetries),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) once(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	addr := s.addrs[int(s.next.Add(1)-1)%len(s.addrs)]

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, addr+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if s.username != "" {
		req.SetBasicAuth(s.username, s.password)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", db.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp.StatusCode, data)
	}
	return data, nil
}

// responseError extracts the failure description from an engine error body.
// Newer engines answer {"error":{"type","reason"}}; 1.x answers
// {"error":"IndexMissingException[[idx] missing]","status":404}.
func responseError(status int, data []byte) *db.ResponseError {
	e := &db.ResponseError{Status: status}
	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	if !gjson.ValidBytes(data) {
		e.Reason = strings.TrimSpace(string(data))
		return e
	}

	errField := gjson.GetBytes(data, "error")
	switch {
	case errField.IsObject():
		e.Type = errField.Get("type").String()
		e.Reason = errField.Get("reason").String()
		if root := errField.Get("root_cause.0.reason"); e.Reason == "" && root.Exists() {
			e.Reason = root.String()
		}
	case errField.Type == gjson.String:
		e.Reason = errField.String()
		if name, _, ok := strings.Cut(e.Reason, "["); ok {
			e.Type = legacyType(name)
		}
	}
	return e
}

// legacyType maps 1.x exception class names onto the snake_case types newer
// engines report.
func legacyType(name string) string {
	switch name {
	case "IndexMissingException":
		return "index_not_found_exception"
	case "SearchPhaseExecutionException":
		return "search_phase_execution_exception"
	default:
		return name
	}
}

func retryable(err error) bool {
	var re *db.ResponseError
	if errors.As(err, &re) {
		switch re.Status {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, db.ErrUnavailable)
}
