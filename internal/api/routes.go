package api

import (
	"net/http"

	"github.com/JaimeStill/neura/internal/blobs"
	"github.com/JaimeStill/neura/internal/studyguides"
	"github.com/JaimeStill/neura/internal/workspaces"
	"github.com/JaimeStill/neura/pkg/openapi"
	"github.com/JaimeStill/neura/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	basePath string,
	runtime *Runtime,
	domain *Domain,
) {
	workspacesHandler := workspaces.NewHandler(domain.Workspaces, runtime.Logger, runtime.Pagination)
	guidesHandler := studyguides.NewHandler(
		domain.StudyGuides,
		domain.Pipeline,
		runtime.Logger,
		runtime.Pagination,
		runtime.MaxUploadSize,
	)
	blobsHandler := blobs.NewHandler(domain.Blobs, runtime.Logger)

	spec.Components.AddSchemas(workspaces.Spec.Schemas())
	spec.Components.AddSchemas(studyguides.Spec.Schemas())
	spec.Components.AddSchemas(blobs.Spec.Schemas())

	routes.Register(
		mux,
		basePath,
		spec,
		workspacesHandler.Routes(),
		guidesHandler.Routes(),
		blobsHandler.Routes(),
	)
}
