package database_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/JaimeStill/neura/pkg/database"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := database.Config{User: "neura"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "localhost" || cfg.Port != 5432 || cfg.Name != "neura" || cfg.SSLMode != "disable" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("ConnMaxLifetimeDuration() = %v", cfg.ConnMaxLifetimeDuration())
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("ConnTimeoutDuration() = %v", cfg.ConnTimeoutDuration())
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_USER", "svc")

	var cfg database.Config
	err := cfg.Finalize(&database.Env{
		Host: "TEST_DB_HOST",
		Port: "TEST_DB_PORT",
		User: "TEST_DB_USER",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Host != "db.internal" || cfg.Port != 6543 || cfg.User != "svc" {
		t.Errorf("env overrides = %+v", cfg)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
	}{
		{"missing user", database.Config{}},
		{"bad sslmode", database.Config{User: "u", SSLMode: "sometimes"}},
		{"idle exceeds open", database.Config{User: "u", MaxOpenConns: 2, MaxIdleConns: 5}},
		{"bad lifetime", database.Config{User: "u", ConnMaxLifetime: "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := database.Config{Host: "localhost", Port: 5432, User: "neura"}
	cfg.Merge(&database.Config{Host: "prod-db", Password: "secret"})

	if cfg.Host != "prod-db" || cfg.Port != 5432 || cfg.User != "neura" || cfg.Password != "secret" {
		t.Errorf("Merge() = %+v", cfg)
	}
}

func TestConfig_Dsn(t *testing.T) {
	cfg := database.Config{
		Host:     "localhost",
		Port:     5432,
		Name:     "neura",
		User:     "neura",
		Password: "p@ss/word",
		SSLMode:  "require",
	}

	u, err := url.Parse(cfg.Dsn())
	if err != nil {
		t.Fatalf("Dsn() is not a URL: %v", err)
	}

	if u.Scheme != "postgres" || u.Host != "localhost:5432" || u.Path != "/neura" {
		t.Errorf("Dsn() = %s", cfg.Dsn())
	}
	if pw, _ := u.User.Password(); pw != "p@ss/word" {
		t.Errorf("password round trip = %q", pw)
	}
	if u.Query().Get("sslmode") != "require" {
		t.Errorf("sslmode = %q", u.Query().Get("sslmode"))
	}
}
