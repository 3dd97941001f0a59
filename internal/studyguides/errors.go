package studyguides

import "github.com/JaimeStill/neura/pkg/failure"

// Domain errors for study guide operations.
var (
	ErrNotFound          = failure.New(failure.NotFound, "study guide not found")
	ErrDuplicate         = failure.New(failure.Conflict, "study guide already exists")
	ErrInvalidID         = failure.New(failure.InvalidInput, "invalid id")
	ErrWorkspaceNotFound = failure.New(failure.NotFound, "workspace not found")
	ErrMissingFile       = failure.New(failure.InvalidInput, "multipart field \"file\" is required")
	ErrMissingFilename   = failure.New(failure.InvalidInput, "no filename provided")
	ErrFileTooLarge      = failure.New(failure.InvalidInput, "file exceeds maximum upload size")
	ErrEmptyDocument     = failure.New(failure.InvalidInput, "no text could be extracted from file")
)
