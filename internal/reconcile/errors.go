package reconcile

import (
	"github.com/JaimeStill/neura/internal/model"
	"github.com/JaimeStill/neura/pkg/failure"
)

var (
	ErrModelUnavailable  = model.ErrUnavailable
	ErrMalformedResponse = failure.New(failure.MalformedResponse, "model returned malformed json")
	ErrSchemaMismatch    = failure.New(failure.SchemaMismatch, "model response does not match study guide schema")
)

// ResponseError carries the model output that failed to reconcile.
type ResponseError struct {
	Err    error
	Detail string
	Raw    string
}

func (e *ResponseError) Error() string {
	return e.Err.Error() + ": " + e.Detail
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
