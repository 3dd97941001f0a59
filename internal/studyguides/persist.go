package studyguides

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/neura/internal/blobs"
	"github.com/JaimeStill/neura/internal/extract"
	"github.com/JaimeStill/neura/internal/reconcile"
)

type persistInput struct {
	workspaceID  uuid.UUID
	filename     string
	contentType  string
	originalPath string
	imageDir     string
	result       *extract.Result
	sent         []string
	sections     []reconcile.Section
}

// persist uploads the original and the images sent to the model, inserts the study
// guide, and links it to its workspace. Blobs already uploaded are not
// removed when a later step fails.
func (p *Pipeline) persist(ctx context.Context, in persistInput, logger *slog.Logger) (*StudyGuide, error) {
	original, err := p.deps.Blobs.Create(ctx, blobs.CreateCommand{
		Path:        in.originalPath,
		Filename:    in.filename,
		ContentType: in.contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload original: %w", err)
	}

	images := p.uploadImages(ctx, in, logger)

	created, err := p.deps.Guides.Create(ctx, CreateCommand{
		WorkspaceID:        in.workspaceID,
		OriginalFilename:   in.filename,
		OriginalFileBlobID: original.ID,
		ExtractedImages:    images,
		Sections:           in.sections,
	})
	if err != nil {
		logger.Error("study guide insert failed, blobs orphaned", "blob_ids", blobIDs(original.ID, images), "error", err)
		return nil, err
	}

	guide, err := p.deps.Guides.Find(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("reload study guide: %w", err)
	}

	if err := p.deps.Workspaces.LinkStudyGuide(ctx, in.workspaceID, guide.ID); err != nil {
		logger.Error("workspace link failed", "study_guide_id", guide.ID, "error", err)
		return nil, err
	}

	logger.Info("study guide persisted", "id", guide.ID, "original_blob_id", original.ID)
	return guide, nil
}

// uploadImages stores each image that was sent to the model and is still
// on disk, and returns a copy of the all-extracted list with blob ids
// attached. A failed upload is logged and leaves that image without a blob
// id.
func (p *Pipeline) uploadImages(ctx context.Context, in persistInput, logger *slog.Logger) []extract.Image {
	ids := make([]*uuid.UUID, len(in.sent))

	var g errgroup.Group
	g.SetLimit(max(p.uploadConcurrency, 1))

	for i, filename := range in.sent {
		path := filepath.Join(in.imageDir, filename)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			logger.Warn("filtered image missing on disk", "image", filename)
			continue
		}

		g.Go(func() error {
			blob, err := p.deps.Blobs.Create(ctx, blobs.CreateCommand{
				Path:        path,
				Filename:    filename,
				ContentType: mime.TypeByExtension(filepath.Ext(filename)),
			})
			if err != nil {
				logger.Error("image upload failed", "image", filename, "error", err)
				return nil
			}
			ids[i] = &blob.ID
			return nil
		})
	}
	g.Wait()

	byName := make(map[string]*uuid.UUID, len(ids))
	for i, filename := range in.sent {
		if ids[i] != nil {
			byName[filename] = ids[i]
		}
	}

	images := make([]extract.Image, len(in.result.Images))
	for i, img := range in.result.Images {
		img.BlobID = byName[img.Filename]
		images[i] = img
	}
	return images
}

func blobIDs(original uuid.UUID, images []extract.Image) []string {
	ids := []string{original.String()}
	for _, img := range images {
		if img.BlobID != nil {
			ids = append(ids, img.BlobID.String())
		}
	}
	return ids
}
