package genemanifest

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a manifest source, a remote object or a
// local file does not exist.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type NotFoundError struct {
	Path  string
	cause error
}

// NewNotFoundError creates a NotFoundError for path wrapping cause.
func NewNotFoundError(path string, cause error) *NotFoundError {
	return &NotFoundError{Path: path, cause: cause}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.cause }

// SchemaError indicates that a loaded table lacks required columns.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// ValidationError indicates that ingested data violates the table contract,
// e.g. an integer outside its declared width or an empty valid record set.
type ValidationError struct {
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: column %s: %s", e.Column, e.Reason)
}

// QueryError indicates an empty or out-of-domain query predicate.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type QueryError struct {
	Column string
	Reason string
	cause  error
}

// NewQueryError creates a QueryError for column wrapping cause.
func NewQueryError(column, reason string, cause error) *QueryError {
	return &QueryError{Column: column, Reason: reason, cause: cause}
}

func (e *QueryError) Error() string {
	if e.Column == "" {
		return "invalid query: " + e.Reason
	}
	return fmt.Sprintf("invalid query: column %s: %s", e.Column, e.Reason)
}

func (e *QueryError) Unwrap() error { return e.cause }

// TransportError indicates a failed remote object transfer.
//
// The original underlying error can be accessed via errors.Unwrap.
type TransportError struct {
	Bucket string
	Key    string
	cause  error
}

// NewTransportError creates a TransportError for bucket/key wrapping cause.
func NewTransportError(bucket, key string, cause error) *TransportError {
	return &TransportError{Bucket: bucket, Key: key, cause: cause}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transfer of %s/%s failed: %v", e.Bucket, e.Key, e.cause)
}

func (e *TransportError) Unwrap() error { return e.cause }

// StateError is returned when an operation is attempted on an engine that is
// not in a state that permits it (unopened, failed or closed).
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: engine is %s", e.Op, e.State)
}
