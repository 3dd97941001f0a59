package workspaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/pagination"
)

// System defines workspace operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Workspace], error)
	Find(ctx context.Context, id uuid.UUID) (*Workspace, error)
	FindPopulated(ctx context.Context, id uuid.UUID) (*Populated, error)
	Create(ctx context.Context, cmd CreateCommand) (*Workspace, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	LinkStudyGuide(ctx context.Context, workspaceID, guideID uuid.UUID) error
}
