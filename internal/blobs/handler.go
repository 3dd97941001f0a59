package blobs

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/pkg/handlers"
	"github.com/JaimeStill/neura/pkg/routes"
)

// Handler serves stored files.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a file handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "files"),
	}
}

// Routes returns the file retrieval route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/files/gridfs",
		Tags:        []string{"Files"},
		Description: "Retrieval of stored originals and extracted images",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{file_id}", Handler: h.Get, OpenAPI: Spec.Get},
		},
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("file_id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, ErrInvalidID)
		return
	}

	blob, rc, err := h.sys.Open(r.Context(), id)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", ContentType(blob))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": blob.Filename}))
	if blob.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("file stream interrupted", "id", id, "error", err)
	}
}
