package esquery

import (
	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrFinalized         = request.ErrFinalized
	ErrIndexNotFound     = domain.ErrIndexNotFound
	ErrEngineUnavailable = domain.ErrEngineUnavailable
	ErrEngineRejected    = domain.ErrEngineRejected
)

// EngineError carries the engine's status and reason for a rejected or
// failed request. Use errors.As() to extract it.
type EngineError = domain.EngineError
