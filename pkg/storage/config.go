package storage

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Backend selects the storage implementation.
type Backend string

// Supported backends.
const (
	BackendFilesystem Backend = "filesystem"
	BackendGCS        Backend = "gcs"
)

// Config contains blob storage configuration.
type Config struct {
	Backend Backend `toml:"backend"`

	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// Bucket and Prefix locate objects for the gcs backend. Endpoint
	// overrides the API endpoint, which is useful against an emulator.
	Bucket   string `toml:"bucket"`
	Prefix   string `toml:"prefix"`
	Endpoint string `toml:"endpoint"`

	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Backend       string
	BasePath      string
	Bucket        string
	Prefix        string
	Endpoint      string
	MaxUploadSize string
}

// MaxUploadSizeBytes returns the parsed upload limit. It is valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Backend); v != "" {
		c.Backend = Backend(v)
	}
	if v := getenv(env.BasePath); v != "" {
		c.BasePath = v
	}
	if v := getenv(env.Bucket); v != "" {
		c.Bucket = v
	}
	if v := getenv(env.Prefix); v != "" {
		c.Prefix = v
	}
	if v := getenv(env.Endpoint); v != "" {
		c.Endpoint = v
	}
	if v := getenv(env.MaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case BackendGCS:
		if c.Bucket == "" {
			return fmt.Errorf("bucket required for gcs backend")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be filesystem or gcs)", c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
