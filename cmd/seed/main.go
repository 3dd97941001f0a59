package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/neura/internal/config"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn  = flag.String("dsn", "", "Database connection string (defaults to DATABASE_DSN, then config.toml)")
		all  = flag.Bool("all", false, "Run all seeders")
		name = flag.String("seeder", "", "Run a single seeder by name")
		file = flag.String("file", "", "External seed file for -seeder workspaces (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var selected []Seeder
	switch {
	case *all:
		selected = listSeeders()
	case *name != "":
		s, ok := getSeeder(*name)
		if !ok {
			log.Fatalf("seeder not found: %s", *name)
		}
		if ws, ok := s.(*WorkspaceSeeder); ok && *file != "" {
			ws.SetFile(*file)
		}
		selected = []Seeder{s}
	default:
		fmt.Println("usage: seed [-dsn <connection-string>] [-all|-seeder <name>] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	db, err := sql.Open("pgx", resolveDSN(*dsn))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := run(context.Background(), db, selected...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	for _, s := range selected {
		fmt.Printf("%s seeded successfully\n", s.Name())
	}
}

func resolveDSN(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		return v
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatalf("config finalize failed: %v", err)
	}
	return cfg.Database.Dsn()
}
