package workspaces

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/query"
	"github.com/JaimeStill/neura/pkg/repository"
)

var projection = query.NewProjectionMap("public", "workspaces", "w").
	Project("id", "Id").
	Project("name", "Name").
	Project("description", "Description").
	ProjectExpr("array_to_string(w.study_guides, ',')", "StudyGuides").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanWorkspace(s repository.Scanner) (Workspace, error) {
	var (
		w   Workspace
		ids string
	)
	err := s.Scan(
		&w.ID,
		&w.Name,
		&w.Description,
		&ids,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return w, err
	}

	w.StudyGuides, err = parseIDs(ids)
	return w, err
}

// parseIDs decodes the comma-joined uuid list produced by the projection.
func parseIDs(joined string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	if joined == "" {
		return ids, nil
	}
	for _, s := range strings.Split(joined, ",") {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse study guide id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

const linkStudyGuideSQL = `UPDATE workspaces
	SET study_guides = array_append(study_guides, $2::uuid), updated_at = NOW()
	WHERE id = $1 AND NOT ($2::uuid = ANY(study_guides))`

// buildUpdate returns the SET clause and arguments for the non-nil fields
// of cmd. The workspace id is the final argument.
func buildUpdate(id uuid.UUID, cmd UpdateCommand) (string, []any) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if cmd.Name != nil {
		args = append(args, *cmd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if cmd.Description != nil {
		args = append(args, *cmd.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	q := fmt.Sprintf(
		"UPDATE workspaces AS %s SET %s WHERE %s.id = $%d RETURNING %s",
		projection.Alias(), strings.Join(sets, ", "), projection.Alias(), len(args), projection.Columns(),
	)
	return q, args
}
