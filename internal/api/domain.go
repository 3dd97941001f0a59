package api

import (
	"time"

	"github.com/JaimeStill/neura/internal/blobs"
	"github.com/JaimeStill/neura/internal/reconcile"
	"github.com/JaimeStill/neura/internal/studyguides"
	"github.com/JaimeStill/neura/internal/workspaces"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Blobs       blobs.System
	StudyGuides studyguides.System
	Workspaces  workspaces.System
	Pipeline    *studyguides.Pipeline
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, modelTimeout time.Duration) *Domain {
	db := runtime.Database.Connection()

	blobsSys := blobs.New(db, runtime.Storage, runtime.Logger)

	guidesSys := studyguides.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	workspacesSys := workspaces.New(
		db,
		guidesSys,
		runtime.Logger,
		runtime.Pagination,
	)

	pipeline := studyguides.NewPipeline(
		studyguides.Dependencies{
			Guides:     guidesSys,
			Blobs:      blobsSys,
			Workspaces: workspacesSys,
			Reconciler: reconcile.New(runtime.Model, modelTimeout, runtime.Logger),
		},
		&runtime.Pipeline,
		runtime.Logger,
	)

	return &Domain{
		Blobs:       blobsSys,
		StudyGuides: guidesSys,
		Workspaces:  workspacesSys,
		Pipeline:    pipeline,
	}
}
