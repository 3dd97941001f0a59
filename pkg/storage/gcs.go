package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/JaimeStill/neura/pkg/lifecycle"
)

type bucket struct {
	client *gcs.Client
	name   string
	prefix string
	logger *slog.Logger
}

// NewGCS creates storage backed by a Google Cloud Storage bucket. Keys are
// stored under prefix. Credentials come from the environment's application
// default credentials unless endpoint is set, in which case the client
// connects unauthenticated.
func NewGCS(bucketName, prefix, endpoint string, logger *slog.Logger) (System, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucket required")
	}

	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}

	client, err := gcs.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &bucket{
		client: client,
		name:   bucketName,
		prefix: strings.Trim(prefix, "/"),
		logger: logger.With("system", "storage", "backend", "gcs"),
	}, nil
}

func (b *bucket) Start(lc *lifecycle.Coordinator) error {
	b.logger.Info("starting storage system", "bucket", b.name, "prefix", b.prefix)

	lc.OnStartup(func() {
		if _, err := b.client.Bucket(b.name).Attrs(lc.Context()); err != nil {
			b.logger.Error("bucket check failed", "bucket", b.name, "error", err)
			return
		}
		b.logger.Info("bucket reachable", "bucket", b.name)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := b.client.Close(); err != nil {
			b.logger.Error("storage client close error", "error", err)
		}
	})

	return nil
}

func (b *bucket) Store(ctx context.Context, key string, r io.Reader, contentType string) error {
	name, err := b.objectName(key)
	if err != nil {
		return err
	}

	w := b.client.Bucket(b.name).Object(name).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("%w: write object: %v", ErrUnavailable, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close object writer: %v", ErrUnavailable, err)
	}
	return nil
}

func (b *bucket) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	name, err := b.objectName(key)
	if err != nil {
		return nil, err
	}

	rc, err := b.client.Bucket(b.name).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: open object: %v", ErrUnavailable, err)
	}
	return rc, nil
}

func (b *bucket) Validate(ctx context.Context, key string) (bool, error) {
	name, err := b.objectName(key)
	if err != nil {
		return false, err
	}

	if _, err := b.client.Bucket(b.name).Object(name).Attrs(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: object attrs: %v", ErrUnavailable, err)
	}
	return true, nil
}

func (b *bucket) objectName(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	if b.prefix == "" {
		return cleaned, nil
	}
	return b.prefix + "/" + cleaned, nil
}
