// Package api assembles the /api module: the workspace, study guide, and
// file endpoints plus the generated OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/infrastructure"
	"github.com/JaimeStill/neura/pkg/middleware"
	"github.com/JaimeStill/neura/pkg/module"
	"github.com/JaimeStill/neura/pkg/openapi"
)

// NewModule builds the API module on top of the shared infrastructure.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg.Model.TimeoutDuration())

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, cfg.API.BasePath, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
