package workspaces

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/handlers"
	"github.com/JaimeStill/neura/pkg/pagination"
	"github.com/JaimeStill/neura/pkg/routes"
)

// Handler provides HTTP endpoints for workspace operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a workspace handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "workspaces"),
		pagination: pagination,
	}
}

// Routes returns the workspace route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/workspaces",
		Tags:        []string{"Workspaces"},
		Description: "Workspace management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidBody)
		return
	}
	if err := cmd.Validate(); err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	ws, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ws)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	populate, _ := strconv.ParseBool(r.URL.Query().Get("populate"))

	var result any
	if populate {
		result, err = h.sys.FindPopulated(r.Context(), id)
	} else {
		result, err = h.sys.Find(r.Context(), id)
	}
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidBody)
		return
	}
	if err := cmd.Validate(); err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	ws, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ws)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
