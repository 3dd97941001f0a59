// Package infrastructure assembles the shared systems every domain module
// depends on: lifecycle coordination, logging, the Postgres connection,
// blob storage, and the multimodal model client.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/model"
	"github.com/JaimeStill/neura/pkg/database"
	"github.com/JaimeStill/neura/pkg/lifecycle"
	"github.com/JaimeStill/neura/pkg/logging"
	"github.com/JaimeStill/neura/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Model     model.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// A missing model API key leaves Model unconfigured rather than failing.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	client, err := model.New(lc.Context(), &cfg.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("model init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Model:     client,
	}, nil
}

// Start registers the database and storage systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
