// Package blobs stores binary files by content and records per-upload
// metadata. Bytes live in the configured storage backend under a key
// derived from their sha256 checksum, so identical content is stored once
// while every upload still receives its own blob id.
package blobs

import (
	"time"

	"github.com/google/uuid"
)

// Blob is the metadata record of one stored file.
type Blob struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Checksum    string    `json:"checksum"`
	StorageKey  string    `json:"storage_key"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommand describes a file on local disk to be stored.
type CreateCommand struct {
	Path        string
	Filename    string
	ContentType string
}
