// Package failure classifies errors into a closed set of kinds that map
// onto HTTP status codes. Domain packages declare their sentinel errors
// with New so that handlers can resolve a status without knowing the
// package that produced the error.
package failure

import (
	"errors"
	"net/http"
)

// Kind identifies the category of a failure.
type Kind string

// Failure kinds.
const (
	InvalidInput       Kind = "invalid_input"
	NotFound           Kind = "not_found"
	Conflict           Kind = "conflict"
	StorageUnavailable Kind = "storage_unavailable"
	ExtractionFailure  Kind = "extraction_failure"
	ModelUnavailable   Kind = "model_unavailable"
	MalformedResponse  Kind = "malformed_response"
	SchemaMismatch     Kind = "schema_mismatch"
	Unexpected         Kind = "unexpected"
)

// Status returns the HTTP status code associated with the kind.
func (k Kind) Status() int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case StorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error. Sentinels created with New are compared by
// identity, so wrapping them with %w preserves both errors.Is and KindOf.
type Error struct {
	Kind Kind
	msg  string
}

// New creates a classified error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors are Unexpected.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unexpected
}

// Status resolves the HTTP status code for err.
func Status(err error) int {
	return KindOf(err).Status()
}
