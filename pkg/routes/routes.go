// Package routes declares route groups that register themselves on an
// http.ServeMux and document themselves in an OpenAPI specification.
package routes

import (
	"net/http"

	"github.com/JaimeStill/neura/pkg/openapi"
)

// Register adds every group to mux and documents it in spec. Routes are
// registered relative to the module root; basePath only affects the
// documented paths.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		g.register(mux, "")
		if spec != nil {
			g.AddToSpec(basePath, spec)
		}
	}
}
