package extract

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Filter rejects images that are too small to carry meaningful content or
// that cannot be decoded. Rejected files are removed from disk.
type Filter struct {
	MinWidth  int
	MinHeight int
	logger    *slog.Logger
}

// NewFilter creates a Filter with the given minimum dimensions.
func NewFilter(minWidth, minHeight int, logger *slog.Logger) *Filter {
	return &Filter{
		MinWidth:  minWidth,
		MinHeight: minHeight,
		logger:    logger.With("system", "image-filter"),
	}
}

// Accept reports whether the image at path meets the minimum dimensions.
// Images exactly at the minimum are accepted.
func (f *Filter) Accept(path string) bool {
	ok := f.check(path)
	if !ok {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			f.logger.Warn("failed to remove rejected image", "path", path, "error", err)
		}
	}
	return ok
}

func (f *Filter) check(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		f.logger.Warn("cannot open image, filtering out", "path", path, "error", err)
		return false
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		f.logger.Warn("cannot identify image, filtering out", "path", path, "error", err)
		return false
	}

	if cfg.Width < f.MinWidth || cfg.Height < f.MinHeight {
		f.logger.Info("filtering out image (too small)", "path", path, "width", cfg.Width, "height", cfg.Height)
		return false
	}

	return true
}
