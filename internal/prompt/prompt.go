// Package prompt assembles the multimodal request sent to the model: a
// fixed instruction block, the document text capped to a character budget,
// the list of image filenames, and the images themselves converted to
// opaque RGB in the same order as the filenames.
package prompt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/neura/internal/extract"
)

// Image is an image payload ready to send to the model.
type Image struct {
	Filename string
	MimeType string
	Data     []byte
}

// Request is a fully assembled model request. Filenames[i] names Images[i].
type Request struct {
	Text      string
	Filenames []string
	Images    []Image
}

// Builder assembles requests.
type Builder struct {
	maxChars int
	logger   *slog.Logger
}

// NewBuilder creates a Builder that caps document text at maxChars characters.
func NewBuilder(maxChars int, logger *slog.Logger) *Builder {
	return &Builder{
		maxChars: maxChars,
		logger:   logger.With("system", "prompt"),
	}
}

// Build assembles a request from the document text and the filtered images
// stored in imageDir. Images that cannot be loaded are skipped and left out
// of the filename list so that filenames and payloads stay aligned.
func (b *Builder) Build(text string, images []extract.Image, imageDir string) (*Request, error) {
	payloads := make([]Image, 0, len(images))
	filenames := make([]string, 0, len(images))

	for _, img := range images {
		data, err := toRGBPNG(filepath.Join(imageDir, img.Filename))
		if err != nil {
			b.logger.Warn("could not prepare image", "filename", img.Filename, "error", err)
			continue
		}
		payloads = append(payloads, Image{
			Filename: img.Filename,
			MimeType: "image/png",
			Data:     data,
		})
		filenames = append(filenames, img.Filename)
	}

	listing, err := json.Marshal(filenames)
	if err != nil {
		return nil, fmt.Errorf("encode filenames: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString(Truncate(text, b.maxChars))
	sb.WriteString(filenamesHeader)
	sb.Write(listing)
	sb.WriteString(outputHeader)

	b.logger.Debug("prompt assembled", "chars", sb.Len(), "images", len(payloads))

	return &Request{
		Text:      sb.String(),
		Filenames: filenames,
		Images:    payloads,
	}, nil
}

// Truncate returns at most limit characters (runes) of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
