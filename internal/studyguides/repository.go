package studyguides

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/pagination"
	"github.com/JaimeStill/neura/pkg/query"
	"github.com/JaimeStill/neura/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a study guide repository.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "studyguides"),
		pagination: pagination,
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*StudyGuide, error) {
	images, err := repository.MarshalJSON(nonNil(cmd.ExtractedImages))
	if err != nil {
		return nil, fmt.Errorf("encode extracted images: %w", err)
	}
	sections, err := repository.MarshalJSON(nonNil(cmd.Sections))
	if err != nil {
		return nil, fmt.Errorf("encode sections: %w", err)
	}

	q := fmt.Sprintf(`INSERT INTO study_guides AS %s (id, workspace_id, original_filename, original_file_blob_id, extracted_images, study_guide)
		VALUES($1, $2, $3, $4, $5::jsonb, $6::jsonb)
		RETURNING %s`, projection.Alias(), projection.Columns())

	guide, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (StudyGuide, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), cmd.WorkspaceID, cmd.OriginalFilename, cmd.OriginalFileBlobID, images, sections,
		}, scanStudyGuide)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("study guide created", "id", guide.ID, "workspace_id", guide.WorkspaceID, "sections", len(guide.Sections))
	return &guide, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*StudyGuide, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	guide, err := repository.QueryOne(ctx, r.db, q, args, scanStudyGuide)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &guide, nil
}

func (r *repo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[StudyGuide], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("WorkspaceId", workspaceID).
		WhereSearch(page.Search, "OriginalFilename")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, repository.MapError(fmt.Errorf("count study guides: %w", err), ErrNotFound, ErrDuplicate)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	guides, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanStudyGuide)
	if err != nil {
		return nil, repository.MapError(fmt.Errorf("query study guides: %w", err), ErrNotFound, ErrDuplicate)
	}

	result := pagination.NewPageResult(guides, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Referenced(ctx context.Context, workspaceID uuid.UUID) ([]StudyGuide, error) {
	guides, err := repository.QueryMany(ctx, r.db, ReferencedQuery(), []any{workspaceID}, scanStudyGuide)
	if err != nil {
		return nil, repository.MapError(fmt.Errorf("query referenced study guides: %w", err), ErrNotFound, ErrDuplicate)
	}
	return guides, nil
}

// ReferencedQuery joins a workspace's study guide id array against the
// study_guides table, preserving array order.
func ReferencedQuery() string {
	a := projection.Alias()
	return fmt.Sprintf(
		"SELECT %s FROM public.workspaces w JOIN %s ON %s.id = ANY(w.study_guides) WHERE w.id = $1 ORDER BY array_position(w.study_guides, %s.id)",
		projection.Columns(), projection.Table(), a, a,
	)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
