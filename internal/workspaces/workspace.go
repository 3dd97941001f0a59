// Package workspaces manages the user-defined containers that group study
// guides. A workspace keeps an ordered set of study guide ids; deleting a
// workspace leaves its study guides in place.
package workspaces

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/studyguides"
)

// Workspace groups study guides.
type Workspace struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StudyGuides []uuid.UUID `json:"study_guides"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Populated is a workspace with its study guides inlined in link order.
type Populated struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	StudyGuides []studyguides.StudyGuide `json:"study_guides"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// CreateCommand contains the data for a new workspace.
type CreateCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the command.
func (c CreateCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateCommand holds a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate rejects an update that sets nothing or blanks the name.
func (c UpdateCommand) Validate() error {
	if c.Name == nil && c.Description == nil {
		return ErrNoUpdateData
	}
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return ErrNameRequired
	}
	return nil
}
