package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvPipelineTempDir overrides the parent directory for per-request work directories.
	EnvPipelineTempDir = "PIPELINE_TEMP_DIR"

	// EnvPipelineMaxTextChars overrides the prompt text limit.
	EnvPipelineMaxTextChars = "PIPELINE_MAX_TEXT_CHARS"

	// EnvPipelineMinImageWidth overrides the minimum accepted image width.
	EnvPipelineMinImageWidth = "PIPELINE_MIN_IMAGE_WIDTH"

	// EnvPipelineMinImageHeight overrides the minimum accepted image height.
	EnvPipelineMinImageHeight = "PIPELINE_MIN_IMAGE_HEIGHT"

	// EnvPipelineUploadConcurrency overrides the number of parallel image uploads.
	EnvPipelineUploadConcurrency = "PIPELINE_UPLOAD_CONCURRENCY"
)

// PipelineConfig tunes document processing.
type PipelineConfig struct {
	TempDir           string `toml:"temp_dir"`
	MaxTextChars      int    `toml:"max_text_chars"`
	MinImageWidth     int    `toml:"min_image_width"`
	MinImageHeight    int    `toml:"min_image_height"`
	UploadConcurrency int    `toml:"upload_concurrency"`
}

// Finalize applies defaults, loads environment overrides, and validates the pipeline configuration.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.TempDir != "" {
		c.TempDir = overlay.TempDir
	}
	if overlay.MaxTextChars != 0 {
		c.MaxTextChars = overlay.MaxTextChars
	}
	if overlay.MinImageWidth != 0 {
		c.MinImageWidth = overlay.MinImageWidth
	}
	if overlay.MinImageHeight != 0 {
		c.MinImageHeight = overlay.MinImageHeight
	}
	if overlay.UploadConcurrency != 0 {
		c.UploadConcurrency = overlay.UploadConcurrency
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.MaxTextChars == 0 {
		c.MaxTextChars = 30000
	}
	if c.MinImageWidth == 0 {
		c.MinImageWidth = 50
	}
	if c.MinImageHeight == 0 {
		c.MinImageHeight = 50
	}
	if c.UploadConcurrency == 0 {
		c.UploadConcurrency = 4
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineTempDir); v != "" {
		c.TempDir = v
	}
	setInt(&c.MaxTextChars, EnvPipelineMaxTextChars)
	setInt(&c.MinImageWidth, EnvPipelineMinImageWidth)
	setInt(&c.MinImageHeight, EnvPipelineMinImageHeight)
	setInt(&c.UploadConcurrency, EnvPipelineUploadConcurrency)
}

func (c *PipelineConfig) validate() error {
	if c.MaxTextChars < 1 {
		return fmt.Errorf("max_text_chars must be positive")
	}
	if c.MinImageWidth < 1 || c.MinImageHeight < 1 {
		return fmt.Errorf("minimum image dimensions must be positive")
	}
	if c.UploadConcurrency < 1 {
		return fmt.Errorf("upload_concurrency must be positive")
	}
	return nil
}

func setInt(dst *int, name string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
