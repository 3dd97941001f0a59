// Command seed populates the database with sample data for local work.
// Seeders register themselves by name and run inside a transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/JaimeStill/neura/pkg/repository"
)

// Seeder populates one domain's tables.
type Seeder interface {
	Name() string
	Description() string

	// Seed runs within the caller's transaction so several seeders can
	// commit or roll back together.
	Seed(ctx context.Context, tx *sql.Tx) error
}

var seeders = map[string]Seeder{}

func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns the registered seeders sorted by name.
func listSeeders() []Seeder {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	slices.Sort(names)

	result := make([]Seeder, 0, len(names))
	for _, name := range names {
		result = append(result, seeders[name])
	}
	return result
}

// run executes the given seeders in a single transaction.
func run(ctx context.Context, db *sql.DB, list ...Seeder) error {
	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range list {
			if err := s.Seed(ctx, tx); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		return struct{}{}, nil
	})
	return err
}
