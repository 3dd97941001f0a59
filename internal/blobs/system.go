package blobs

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// System defines blob operations.
type System interface {
	Handler() *Handler
	Create(ctx context.Context, cmd CreateCommand) (*Blob, error)
	Find(ctx context.Context, id uuid.UUID) (*Blob, error)
	Open(ctx context.Context, id uuid.UUID) (*Blob, io.ReadCloser, error)
}
