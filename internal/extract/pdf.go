package extract

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// readPDF extracts page text in page order and writes every embedded
// raster image as img_{page}_{counter}.{ext}. The counter runs across the
// whole document.
func readPDF(ctx context.Context, path, imageDir string, logger *slog.Logger) (string, []Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", nil, err
	}

	text, err := pdfText(file, info.Size(), logger)
	if err != nil {
		return "", nil, err
	}

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", nil, err
	}

	images, err := pdfImages(file, imageDir, logger)
	if err != nil {
		return "", nil, err
	}

	return text, images, nil
}

func pdfText(r io.ReaderAt, size int64, logger *slog.Logger) (text string, err error) {
	// The text reader panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read pdf text: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("failed to extract page text", "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}

type pdfImage struct {
	page int
	obj  int
	ext  string
	data []byte
}

// pdfImages writes the embedded images ordered by page and then object
// number. pdfcpu yields the images of a page in no particular order.
func pdfImages(rs io.ReadSeeker, imageDir string, logger *slog.Logger) ([]Image, error) {
	var found []pdfImage

	digest := func(img model.Image, _ bool, _ int) error {
		data, err := io.ReadAll(img)
		if err != nil {
			logger.Warn("could not read image", "page", img.PageNr, "object", img.ObjNr, "error", err)
			return nil
		}

		ext := strings.ToLower(img.FileType)
		if ext == "" {
			ext = "png"
		}

		found = append(found, pdfImage{page: img.PageNr, obj: img.ObjNr, ext: ext, data: data})
		return nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ExtractImages(rs, nil, digest, conf); err != nil {
		return nil, fmt.Errorf("extract pdf images: %w", err)
	}

	slices.SortFunc(found, func(a, b pdfImage) int {
		if c := cmp.Compare(a.page, b.page); c != 0 {
			return c
		}
		return cmp.Compare(a.obj, b.obj)
	})

	images := make([]Image, 0, len(found))
	counter := 0
	for _, img := range found {
		filename := fmt.Sprintf("img_%d_%d.%s", img.page, counter, img.ext)
		if err := writeImage(filepath.Join(imageDir, filename), bytes.NewReader(img.data)); err != nil {
			logger.Warn("could not extract image", "page", img.page, "object", img.obj, "error", err)
			continue
		}

		images = append(images, Image{Filename: filename, PageNumber: img.page})
		counter++
	}

	return images, nil
}

func writeImage(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
