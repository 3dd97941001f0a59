package blobs

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/query"
	"github.com/JaimeStill/neura/pkg/repository"
	"github.com/JaimeStill/neura/pkg/storage"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a blob repository backed by db for metadata and store for bytes.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "blobs"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Blob, error) {
	f, err := os.Open(cmd.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cmd.Filename, err)
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", cmd.Filename, err)
	}
	checksum := hex.EncodeToString(h.Sum(nil))
	key := StorageKey(checksum)

	exists, err := r.storage.Validate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", key, err)
	}

	if !exists {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind %s: %w", cmd.Filename, err)
		}
		if err := r.storage.Store(ctx, key, f, cmd.ContentType); err != nil {
			return nil, fmt.Errorf("store %s: %w", cmd.Filename, err)
		}
	}

	q := `INSERT INTO blobs(id, filename, content_type, size_bytes, checksum, storage_key)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, filename, content_type, size_bytes, checksum, storage_key, created_at`

	blob, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Blob, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), cmd.Filename, cmd.ContentType, size, checksum, key,
		}, scanBlob)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("blob stored", "id", blob.ID, "filename", blob.Filename, "size", size, "deduplicated", exists)
	return &blob, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Blob, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	blob, err := repository.QueryOne(ctx, r.db, q, args, scanBlob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &blob, nil
}

func (r *repo) Open(ctx context.Context, id uuid.UUID) (*Blob, io.ReadCloser, error) {
	blob, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := r.storage.Open(ctx, blob.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob %s: %w", id, err)
	}
	return blob, rc, nil
}
