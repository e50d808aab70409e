package domain

import "errors"

var (
	// ErrInvalidDocument signals a query document that cannot be decoded.
	ErrInvalidDocument = errors.New("invalid query document")
	// ErrIndexNotFound signals a search against a missing index.
	ErrIndexNotFound = errors.New("index not found")
	// ErrEngineUnavailable signals that the search engine could not be reached.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEngineRejected signals that the engine refused the request.
	ErrEngineRejected = errors.New("search engine rejected request")
)

// EngineError carries the engine's own failure description.
type EngineError struct {
	Status int
	Type   string
	Reason string
	err    error
}

// NewEngineError wraps sentinel with the engine's HTTP status and reason.
func NewEngineError(sentinel error, status int, errType, reason string) error {
	return &EngineError{Status: status, Type: errType, Reason: reason, err: sentinel}
}

func (e *EngineError) Error() string {
	msg := e.err.Error()
	if e.Type != "" {
		msg += ": " + e.Type
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *EngineError) Unwrap() error { return e.err }
