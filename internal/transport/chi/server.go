package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
	"github.com/kailas-cloud/esquery/internal/metrics"
	"github.com/kailas-cloud/esquery/internal/querydoc"
	gen "github.com/kailas-cloud/esquery/internal/transport/generated"
	healthuc "github.com/kailas-cloud/esquery/internal/usecase/health"
)

const defaultMaxBodyBytes = 1 << 20

// Searcher composes and executes search requests.
type Searcher interface {
	Compose(b *request.Builder) (request.Request, error)
	Search(ctx context.Context, index string, req request.Request) (result.Set, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented

	search        Searcher
	health        HealthChecker
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search:       search,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		bodyTooLargeHandler,
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, gen.ErrorResponseCodeInvalidDocument),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusNotFound, gen.ErrorResponseCodeIndexNotFound),
		engineErrorHandler(domain.ErrEngineRejected, http.StatusBadGateway, gen.ErrorResponseCodeEngineRejected),
		engineErrorHandler(domain.ErrEngineUnavailable, http.StatusServiceUnavailable, gen.ErrorResponseCodeEngineUnavailable),
	}
	return s
}

// WithMaxBodyBytes limits the size of accepted query documents.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes builds the router with the full middleware chain.
func (s *Server) Routes(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Handle("/metrics", promhttp.Handler())
	gen.HandlerWithOptions(s, gen.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			s.logger.Warn("invalid request parameter", zap.Error(err))
			writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, err.Error())
		},
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, gen.ErrorResponseCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, gen.ErrorResponseCodeMethodNotAllowed, "method not allowed")
	})
	return r
}

// Compose handles POST /v1/compose: returns the engine body without executing it.
func (s *Server) Compose(w http.ResponseWriter, r *http.Request, params gen.ComposeParams) {
	req, ok := s.composeFromBody(w, r, params.Format)
	if !ok {
		return
	}
	writeJSONIndent(w, http.StatusOK, gen.ComposedBody(req.Source()), isSet(params.Pretty))
}

// SearchIndex handles POST /v1/indexes/{index}/search.
func (s *Server) SearchIndex(w http.ResponseWriter, r *http.Request, index gen.IndexName, params gen.SearchIndexParams) {
	s.runSearch(w, r, index, params.Format, isSet(params.Pretty))
}

// SearchAll handles POST /v1/search across all indices.
func (s *Server) SearchAll(w http.ResponseWriter, r *http.Request, params gen.SearchAllParams) {
	s.runSearch(w, r, "", params.Format, isSet(params.Pretty))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToDTO(report))
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, index string, format *gen.DocumentFormat, pretty bool) {
	req, ok := s.composeFromBody(w, r, format)
	if !ok {
		return
	}

	set, err := s.search.Search(r.Context(), index, req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSONIndent(w, http.StatusOK, resultSetToDTO(set), pretty)
}

func (s *Server) composeFromBody(w http.ResponseWriter, r *http.Request, format *gen.DocumentFormat) (request.Request, bool) {
	f, err := documentFormat(r, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, err.Error())
		return request.Request{}, false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, false
	}

	doc, err := querydoc.Parse(data, f)
	if err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, false
	}

	b := request.NewBuilder()
	if err := querydoc.Apply(doc, b); err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, false
	}

	req, err := s.search.Compose(b)
	if err != nil {
		s.handleDomainError(w, err)
		return request.Request{}, false
	}
	return req, true
}

// documentFormat picks the decoder from ?format= or Content-Type.
func documentFormat(r *http.Request, format *gen.DocumentFormat) (querydoc.Format, error) {
	if format != nil {
		switch *format {
		case gen.DocumentFormatJson:
			return querydoc.FormatJSON, nil
		case gen.DocumentFormatYaml, gen.DocumentFormatYml:
			return querydoc.FormatYAML, nil
		default:
			return "", fmt.Errorf("unsupported format %q", string(*format))
		}
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/json":
		return querydoc.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return querydoc.FormatYAML, nil
	default:
		return querydoc.FormatAuto, nil
	}
}

func isSet(b *bool) bool { return b != nil && *b }

func writeJSON(w http.ResponseWriter, status int, v any) {
	writeJSONIndent(w, status, v, false)
}

func writeJSONIndent(w http.ResponseWriter, status int, v any, indent bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, clientMessage(err, sentinel))
		return true
	}
}

// engineErrorHandler appends the engine's reason to the sentinel message.
func engineErrorHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		var ee *domain.EngineError
		if errors.As(err, &ee) && ee.Reason != "" {
			msg = fmt.Sprintf("%s: %s", msg, ee.Reason)
		}
		writeError(w, status, code, msg)
		return true
	}
}

func bodyTooLargeHandler(w http.ResponseWriter, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, gen.ErrorResponseCodePayloadTooLarge,
		fmt.Sprintf("request body exceeds %d bytes", mbe.Limit))
	return true
}

// clientMessage keeps the detail for invalid documents (it points at the
// offending entry) and falls back to the sentinel text otherwise.
func clientMessage(err, sentinel error) string {
	if errors.Is(sentinel, domain.ErrInvalidDocument) {
		return err.Error()
	}
	return sentinel.Error()
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
