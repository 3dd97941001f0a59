package api

import (
	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/infrastructure"
	"github.com/JaimeStill/neura/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	Pipeline      config.PipelineConfig
	MaxUploadSize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Model:     infra.Model,
		},
		Pagination:    cfg.API.Pagination,
		Pipeline:      cfg.Pipeline,
		MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
	}
}
