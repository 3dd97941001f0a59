package studyguides

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/pagination"
)

// Store persists and reads study guides.
type Store interface {
	Create(ctx context.Context, cmd CreateCommand) (*StudyGuide, error)
	Find(ctx context.Context, id uuid.UUID) (*StudyGuide, error)
}

// System defines the study guide repository operations.
type System interface {
	Store
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[StudyGuide], error)

	// Referenced returns the study guides linked to a workspace in link order.
	Referenced(ctx context.Context, workspaceID uuid.UUID) ([]StudyGuide, error)
}

// WorkspaceLinker is the workspace behavior the pipeline depends on.
type WorkspaceLinker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	LinkStudyGuide(ctx context.Context, workspaceID, guideID uuid.UUID) error
}
