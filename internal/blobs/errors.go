package blobs

import "github.com/JaimeStill/neura/pkg/failure"

var (
	ErrNotFound  = failure.New(failure.NotFound, "file not found")
	ErrDuplicate = failure.New(failure.Conflict, "blob id already exists")
	ErrInvalidID = failure.New(failure.InvalidInput, "invalid file id")
)
