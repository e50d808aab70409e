package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for storage operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrUnavailable   = errors.New("db: backend unavailable")
)

// Op constants name the backend command for error context.
const (
	OpSearch = "_search"
	OpPing   = "PING"
	OpGet    = "GET"
	OpSet    = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ResponseError is a non-2xx answer from the search engine.
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Type == "" && e.Reason == "" {
		return fmt.Sprintf("engine responded %d", e.Status)
	}
	return fmt.Sprintf("engine responded %d: %s: %s", e.Status, e.Type, e.Reason)
}

// Is reports index_not_found responses as ErrIndexNotFound.
func (e *ResponseError) Is(target error) bool {
	return target == ErrIndexNotFound && e.Type == "index_not_found_exception"
}
