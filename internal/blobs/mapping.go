package blobs

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/JaimeStill/neura/pkg/query"
	"github.com/JaimeStill/neura/pkg/repository"
)

var projection = query.NewProjectionMap("public", "blobs", "b").
	Project("id", "Id").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("checksum", "Checksum").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

func scanBlob(s repository.Scanner) (Blob, error) {
	var b Blob
	err := s.Scan(
		&b.ID,
		&b.Filename,
		&b.ContentType,
		&b.SizeBytes,
		&b.Checksum,
		&b.StorageKey,
		&b.CreatedAt,
	)
	return b, err
}

// StorageKey returns the content-addressed key for a sha256 hex checksum.
func StorageKey(checksum string) string {
	return fmt.Sprintf("blobs/%s/%s", checksum[:2], checksum)
}

// ContentType resolves the content type served for a blob: the recorded
// type, then a guess from the filename, then application/octet-stream.
func ContentType(b *Blob) string {
	if b.ContentType != "" {
		return b.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(b.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
