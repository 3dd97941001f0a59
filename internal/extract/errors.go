package extract

import "github.com/JaimeStill/neura/pkg/failure"

// Extraction errors.
var (
	ErrUnsupportedType  = failure.New(failure.InvalidInput, "unsupported file type")
	ErrExtractionFailed = failure.New(failure.ExtractionFailure, "failed to process file")
)
