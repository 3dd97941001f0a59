package workspaces

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/studyguides"
	"github.com/JaimeStill/neura/pkg/pagination"
	"github.com/JaimeStill/neura/pkg/query"
	"github.com/JaimeStill/neura/pkg/repository"
)

type repo struct {
	db         *sql.DB
	guides     studyguides.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a workspace repository. guides resolves populated views.
func New(db *sql.DB, guides studyguides.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		guides:     guides,
		logger:     logger.With("system", "workspaces"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Workspace], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, repository.MapError(fmt.Errorf("count workspaces: %w", err), ErrNotFound, ErrDuplicate)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanWorkspace)
	if err != nil {
		return nil, repository.MapError(fmt.Errorf("query workspaces: %w", err), ErrNotFound, ErrDuplicate)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	ws, err := repository.QueryOne(ctx, r.db, q, args, scanWorkspace)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &ws, nil
}

func (r *repo) FindPopulated(ctx context.Context, id uuid.UUID) (*Populated, error) {
	ws, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	guides, err := r.guides.Referenced(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(guides) != len(ws.StudyGuides) {
		r.logger.Warn("workspace references missing study guides", "id", id, "referenced", len(ws.StudyGuides), "found", len(guides))
	}

	return &Populated{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		StudyGuides: guides,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Workspace, error) {
	q := fmt.Sprintf(`INSERT INTO workspaces AS %s (id, name, description)
		VALUES($1, $2, $3)
		RETURNING %s`, projection.Alias(), projection.Columns())

	ws, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Workspace, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Name, cmd.Description}, scanWorkspace)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("workspace created", "id", ws.ID, "name", ws.Name)
	return &ws, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Workspace, error) {
	q, args := buildUpdate(id, cmd)

	ws, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Workspace, error) {
		return repository.QueryOne(ctx, tx, q, args, scanWorkspace)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("workspace updated", "id", ws.ID)
	return &ws, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM workspaces WHERE id = $1`, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("workspace deleted", "id", id)
	return nil
}

func (r *repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM workspaces WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return exists, nil
}

// LinkStudyGuide appends guideID to the workspace unless it is already
// present. Linking twice is not an error.
func (r *repo) LinkStudyGuide(ctx context.Context, workspaceID, guideID uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, linkStudyGuideSQL, workspaceID, guideID)
	if err == nil {
		r.logger.Info("study guide linked", "workspace_id", workspaceID, "study_guide_id", guideID)
		return nil
	}

	if err != sql.ErrNoRows {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	exists, err := r.Exists(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
