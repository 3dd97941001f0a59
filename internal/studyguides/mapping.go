package studyguides

import (
	"github.com/JaimeStill/neura/internal/extract"
	"github.com/JaimeStill/neura/internal/reconcile"
	"github.com/JaimeStill/neura/pkg/query"
	"github.com/JaimeStill/neura/pkg/repository"
)

var projection = query.NewProjectionMap("public", "study_guides", "sg").
	Project("id", "Id").
	Project("workspace_id", "WorkspaceId").
	Project("original_filename", "OriginalFilename").
	Project("original_file_blob_id", "OriginalFileBlobId").
	Project("extracted_images", "ExtractedImages").
	Project("study_guide", "StudyGuide").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanStudyGuide(s repository.Scanner) (StudyGuide, error) {
	var g StudyGuide
	err := s.Scan(
		&g.ID,
		&g.WorkspaceID,
		&g.OriginalFilename,
		&g.OriginalFileBlobID,
		repository.JSON[[]extract.Image]{V: &g.ExtractedImages},
		repository.JSON[[]reconcile.Section]{V: &g.Sections},
		&g.CreatedAt,
	)
	return g, err
}
