// Package studyguides owns the upload pipeline that turns a document into a
// persisted study guide, along with retrieval of stored guides.
package studyguides

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/extract"
	"github.com/JaimeStill/neura/internal/reconcile"
)

// StudyGuide is a generated study guide. It is never modified after insert.
type StudyGuide struct {
	ID                 uuid.UUID           `json:"id"`
	WorkspaceID        uuid.UUID           `json:"workspace_id"`
	OriginalFilename   string              `json:"original_filename"`
	OriginalFileBlobID uuid.UUID           `json:"original_file_blob_id"`
	ExtractedImages    []extract.Image     `json:"extracted_images"`
	Sections           []reconcile.Section `json:"study_guide"`
	CreatedAt          time.Time           `json:"created_at"`
}

// CreateCommand contains the data of a new study guide.
type CreateCommand struct {
	WorkspaceID        uuid.UUID
	OriginalFilename   string
	OriginalFileBlobID uuid.UUID
	ExtractedImages    []extract.Image
	Sections           []reconcile.Section
}
