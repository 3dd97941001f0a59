package workspaces

import "github.com/JaimeStill/neura/pkg/failure"

// Domain errors for workspace operations.
var (
	ErrNotFound     = failure.New(failure.NotFound, "workspace not found")
	ErrDuplicate    = failure.New(failure.Conflict, "workspace already exists")
	ErrInvalidID    = failure.New(failure.InvalidInput, "invalid workspace id")
	ErrInvalidBody  = failure.New(failure.InvalidInput, "invalid request body")
	ErrNameRequired = failure.New(failure.InvalidInput, "name is required")
	ErrNoUpdateData = failure.New(failure.InvalidInput, "no update data provided")
)
