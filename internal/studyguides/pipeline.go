package studyguides

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/blobs"
	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/extract"
	"github.com/JaimeStill/neura/internal/prompt"
	"github.com/JaimeStill/neura/internal/reconcile"
)

// BlobCreator stores a local file as a blob.
type BlobCreator interface {
	Create(ctx context.Context, cmd blobs.CreateCommand) (*blobs.Blob, error)
}

// Dependencies are the collaborators of a Pipeline.
type Dependencies struct {
	Guides     Store
	Blobs      BlobCreator
	Workspaces WorkspaceLinker
	Reconciler *reconcile.Reconciler
}

// Upload is one document submitted for processing.
type Upload struct {
	WorkspaceID uuid.UUID
	Filename    string
	Content     io.Reader
}

// Pipeline runs an upload through extraction, prompting, reconciliation and
// persistence. Each call works in its own temporary directory, removed
// before Process returns.
type Pipeline struct {
	deps              Dependencies
	extractor         *extract.Extractor
	prompts           *prompt.Builder
	tempDir           string
	uploadConcurrency int
	logger            *slog.Logger
}

// NewPipeline creates a Pipeline from the pipeline configuration.
func NewPipeline(deps Dependencies, cfg *config.PipelineConfig, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		deps:              deps,
		extractor:         extract.New(extract.NewFilter(cfg.MinImageWidth, cfg.MinImageHeight, logger), logger),
		prompts:           prompt.NewBuilder(cfg.MaxTextChars, logger),
		tempDir:           cfg.TempDir,
		uploadConcurrency: cfg.UploadConcurrency,
		logger:            logger.With("system", "pipeline"),
	}
}

// Process generates and persists a study guide for up.
func (p *Pipeline) Process(ctx context.Context, up Upload) (*StudyGuide, error) {
	filename := filepath.Base(up.Filename)
	if up.Filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, ErrMissingFilename
	}

	format, err := extract.FormatOf(filename)
	if err != nil {
		return nil, err
	}

	exists, err := p.deps.Workspaces.Exists(ctx, up.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrWorkspaceNotFound
	}

	workDir := filepath.Join(p.tempDir, uuid.NewString())
	imageDir := filepath.Join(workDir, "images")
	if err := os.MkdirAll(imageDir, 0755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			p.logger.Error("work directory cleanup failed", "path", workDir, "error", err)
		}
	}()

	logger := p.logger.With("workspace_id", up.WorkspaceID, "filename", filename)

	originalPath := filepath.Join(workDir, filename)
	if err := saveUpload(originalPath, up.Content); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	result, err := p.extractor.Extract(ctx, originalPath, imageDir)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, ErrEmptyDocument
	}

	req, err := p.prompts.Build(result.Text, result.Filtered, imageDir)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	sections, err := p.deps.Reconciler.Reconcile(ctx, req, req.Filenames)
	if err != nil {
		return nil, err
	}
	logger.Info("study guide generated", "sections", len(sections))

	return p.persist(ctx, persistInput{
		workspaceID:  up.WorkspaceID,
		filename:     filename,
		contentType:  format.ContentType(),
		originalPath: originalPath,
		imageDir:     imageDir,
		result:       result,
		sent:         req.Filenames,
		sections:     sections,
	}, logger)
}

func saveUpload(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
