package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/JaimeStill/neura/internal/workspaces"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&WorkspaceSeeder{})
}

// WorkspaceSeed is a single workspace entry in a seed file. The id is
// fixed so repeated runs update rather than duplicate.
type WorkspaceSeed struct {
	ID uuid.UUID `json:"id"`
	workspaces.CreateCommand
}

// WorkspaceSeedData represents the JSON structure for workspace seed files.
type WorkspaceSeedData struct {
	Workspaces []WorkspaceSeed `json:"workspaces"`
}

// WorkspaceSeeder creates sample workspaces from an embedded or external file.
type WorkspaceSeeder struct {
	file string
}

func (s *WorkspaceSeeder) Name() string {
	return "workspaces"
}

func (s *WorkspaceSeeder) Description() string {
	return "Seeds sample workspaces for local development"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *WorkspaceSeeder) SetFile(path string) {
	s.file = path
}

// Seed upserts each workspace by id. Existing study guide links are kept.
func (s *WorkspaceSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO workspaces (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = NOW()`

	for _, ws := range data.Workspaces {
		if err := ws.Validate(); err != nil {
			return fmt.Errorf("workspace %s: %w", ws.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, ws.ID, ws.Name, ws.Description); err != nil {
			return fmt.Errorf("save workspace %s: %w", ws.Name, err)
		}
	}

	return nil
}

func (s *WorkspaceSeeder) loadSeedData() (*WorkspaceSeedData, error) {
	var (
		content []byte
		err     error
	)

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/workspaces.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data WorkspaceSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}
