package studyguides

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/handlers"
	"github.com/JaimeStill/neura/pkg/pagination"
	"github.com/JaimeStill/neura/pkg/routes"
)

// Handler provides HTTP endpoints for study guides.
type Handler struct {
	sys           System
	pipeline      *Pipeline
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a study guide handler.
func NewHandler(sys System, pipeline *Pipeline, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		pipeline:      pipeline,
		logger:        logger.With("handler", "studyguides"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the study guide route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Study Guides"},
		Description: "Study guide generation and retrieval",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/workspaces/{id}/study-guides", Handler: h.Upload, OpenAPI: Spec.Upload},
			{Method: "GET", Pattern: "/workspaces/{id}/study-guides", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/study-guides/{id}", Handler: h.Find, OpenAPI: Spec.Find},
		},
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondFailure(w, h.logger, ErrMissingFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrMissingFile)
		return
	}
	defer file.Close()

	guide, err := h.pipeline.Process(context.WithoutCancel(r.Context()), Upload{
		WorkspaceID: workspaceID,
		Filename:    header.Filename,
		Content:     file,
	})
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, guide)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.ListByWorkspace(r.Context(), workspaceID, page)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	guide, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, guide)
}
