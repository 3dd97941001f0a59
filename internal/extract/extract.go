// Package extract pulls plain text and embedded raster images out of
// uploaded documents. Images are written to a caller-supplied directory and
// screened by a Filter; rejected images are deleted and only survive in the
// all-extracted list.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Format identifies a supported document type.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatPPTX Format = "pptx"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// Image describes an image pulled from a document. BlobID is set once the
// image has been uploaded to blob storage.
type Image struct {
	Filename   string     `json:"filename"`
	PageNumber int        `json:"page_number"`
	BlobID     *uuid.UUID `json:"blob_id,omitempty"`
}

// Result is the outcome of extracting one document. Images lists every
// image that was written; Filtered lists the subset that passed the
// filter and still exists on disk.
type Result struct {
	Text     string
	Images   []Image
	Filtered []Image
}

// FormatOf resolves the format from a filename's extension, ignoring case.
func FormatOf(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch Format(ext) {
	case FormatPDF, FormatPPTX, FormatDOCX, FormatTXT:
		return Format(ext), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(filename))
}

// ContentType returns the MIME type of an original document.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatTXT:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Extractor dispatches documents to the per-format readers and applies the
// image filter.
type Extractor struct {
	filter *Filter
	logger *slog.Logger
}

// New creates an Extractor.
func New(filter *Filter, logger *slog.Logger) *Extractor {
	return &Extractor{
		filter: filter,
		logger: logger.With("system", "extract"),
	}
}

// Extract reads the document at path. Images are written into imageDir,
// which must already exist.
func (e *Extractor) Extract(ctx context.Context, path, imageDir string) (*Result, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var (
		text   string
		images []Image
	)

	switch format {
	case FormatPDF:
		text, images, err = readPDF(ctx, path, imageDir, e.logger)
	case FormatPPTX:
		text, images, err = readPPTX(ctx, path, imageDir, e.logger)
	case FormatDOCX:
		text, err = readDOCX(path)
	case FormatTXT:
		text, err = readTXT(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtractionFailed, format, err)
	}

	result := &Result{
		Text:     text,
		Images:   images,
		Filtered: e.filterImages(images, imageDir),
	}

	e.logger.Info("document extracted",
		"format", format,
		"text_chars", len(text),
		"images", len(result.Images),
		"kept", len(result.Filtered),
	)

	return result, nil
}

func (e *Extractor) filterImages(images []Image, imageDir string) []Image {
	kept := make([]Image, 0, len(images))
	for _, img := range images {
		if e.filter.Accept(filepath.Join(imageDir, img.Filename)) {
			kept = append(kept, img)
		}
	}
	return kept
}
