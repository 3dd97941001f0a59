// Package storage provides blob storage abstractions. It defines a System
// interface for streaming binary data by key and ships a filesystem
// implementation for single-node deployments and a Google Cloud Storage
// implementation for hosted ones.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/neura/pkg/failure"
	"github.com/JaimeStill/neura/pkg/lifecycle"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = failure.New(failure.NotFound, "storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = failure.New(failure.StorageUnavailable, "storage: permission denied")

	// ErrInvalidKey indicates the key is malformed or contains invalid characters.
	// This includes empty keys and path traversal attempts.
	ErrInvalidKey = failure.New(failure.InvalidInput, "storage: invalid key")

	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = failure.New(failure.StorageUnavailable, "storage: backend unavailable")
)

// System defines blob storage operations. Keys are slash-separated
// relative paths.
type System interface {
	// Store streams r to key, replacing any existing content.
	Store(ctx context.Context, key string, r io.Reader, contentType string) error

	// Open returns a reader for the content at key.
	// Returns ErrNotFound if the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the backend selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendFilesystem, "":
		return NewFilesystem(cfg.BasePath, logger)
	case BackendGCS:
		return NewGCS(cfg.Bucket, cfg.Prefix, cfg.Endpoint, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
