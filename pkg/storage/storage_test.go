package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/neura/pkg/failure"
	"github.com/JaimeStill/neura/pkg/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newFilesystem(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFilesystem(dir, discard)
	if err != nil {
		t.Fatalf("NewFilesystem() error = %v", err)
	}
	return fs, dir
}

func TestFilesystem_RoundTrip(t *testing.T) {
	fs, dir := newFilesystem(t)
	ctx := context.Background()
	key := "blobs/ab/abcdef"

	if ok, err := fs.Validate(ctx, key); err != nil || ok {
		t.Fatalf("Validate() before store = (%v, %v), want (false, nil)", ok, err)
	}

	if err := fs.Store(ctx, key, strings.NewReader("hello"), "text/plain"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "blobs", "ab", "abcdef")); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	if ok, err := fs.Validate(ctx, key); err != nil || !ok {
		t.Fatalf("Validate() after store = (%v, %v), want (true, nil)", ok, err)
	}

	rc, err := fs.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "hello" {
		t.Errorf("Open() content = %q", data)
	}

	if err := fs.Store(ctx, key, strings.NewReader("replaced"), ""); err != nil {
		t.Fatalf("Store() overwrite error = %v", err)
	}

	rc, err = fs.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open() after overwrite error = %v", err)
	}
	data, _ = io.ReadAll(rc)
	rc.Close()
	if string(data) != "replaced" {
		t.Errorf("Open() after overwrite = %q, want %q", data, "replaced")
	}
}

func TestFilesystem_OpenMissing(t *testing.T) {
	fs, _ := newFilesystem(t)

	_, err := fs.Open(context.Background(), "blobs/zz/missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
	if failure.KindOf(err) != failure.NotFound {
		t.Errorf("KindOf() = %s", failure.KindOf(err))
	}
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	fs, _ := newFilesystem(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/../../escape", "."} {
		t.Run(key, func(t *testing.T) {
			err := fs.Store(ctx, key, strings.NewReader("x"), "")
			if !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestNewFilesystem_EmptyPath(t *testing.T) {
	if _, err := storage.NewFilesystem("", discard); err == nil {
		t.Error("expected error for empty base path")
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name     string
		cfg      storage.Config
		wantErr  bool
		wantSize int64
	}{
		{"defaults", storage.Config{}, false, 100_000_000},
		{"human size", storage.Config{MaxUploadSize: "50MB"}, false, 50_000_000},
		{"gcs without bucket", storage.Config{Backend: storage.BackendGCS}, true, 0},
		{"gcs with bucket", storage.Config{Backend: storage.BackendGCS, Bucket: "neura"}, false, 100_000_000},
		{"unknown backend", storage.Config{Backend: "s3"}, true, 0},
		{"bad size", storage.Config{MaxUploadSize: "lots"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if got := cfg.MaxUploadSizeBytes(); got != tt.wantSize {
				t.Errorf("MaxUploadSizeBytes() = %d, want %d", got, tt.wantSize)
			}
		})
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv("TEST_STORAGE_BASE_PATH", "/srv/blobs")

	var cfg storage.Config
	if err := cfg.Finalize(&storage.Env{BasePath: "TEST_STORAGE_BASE_PATH"}); err != nil {
		t.Fatal(err)
	}
	if cfg.BasePath != "/srv/blobs" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}
}
