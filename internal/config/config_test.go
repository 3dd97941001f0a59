package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/neura/internal/config"
)

const baseConfig = `
version = "1.2.3"

[server]
port = 8081

[database]
name = "neura"
user = "neura"

[storage]
max_upload_size = "10MB"

[model]
provider = "gemini"
`

// isolateEnv clears variables that would leak into Load and Finalize and
// restores them when the test ends.
func isolateEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_BaseAndOverlay(t *testing.T) {
	isolateEnv(t, config.EnvServiceEnv, config.EnvServerPort, config.EnvModelAPIKey, config.EnvGeminiAPIKey)

	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, "config.test.toml", "shutdown_timeout = \"60s\"\n\n[server]\nport = 9090\n")
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q", cfg.Version)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.ShutdownTimeoutDuration() != time.Minute {
		t.Errorf("ShutdownTimeoutDuration() = %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Storage.MaxUploadSizeBytes() != 10_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.Storage.MaxUploadSizeBytes())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if cfg.Model.Name != "gemini-2.0-flash" {
		t.Errorf("Model.Name = %q", cfg.Model.Name)
	}
	if cfg.Model.Configured() {
		t.Error("model should be unconfigured without a key")
	}
	if cfg.Pipeline.MaxTextChars != 30000 || cfg.Pipeline.MinImageWidth != 50 || cfg.Pipeline.UploadConcurrency != 4 {
		t.Errorf("Pipeline defaults = %+v", cfg.Pipeline)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolateEnv(t, config.EnvServiceEnv, config.EnvModelAPIKey, config.EnvGeminiAPIKey)

	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, config.DotEnvFile, "GEMINI_API_KEY=from-dotenv\n")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Model.APIKey != "from-dotenv" || !cfg.Model.Configured() {
		t.Errorf("Model.APIKey = %q, want key from .env", cfg.Model.APIKey)
	}
}

func TestLoad_MissingBase(t *testing.T) {
	isolateEnv(t, config.EnvServiceEnv)
	t.Chdir(t.TempDir())

	if _, err := config.Load(); err == nil {
		t.Error("expected error when config.toml is absent")
	}
}

func TestServerConfig_Finalize(t *testing.T) {
	isolateEnv(t, config.EnvServerHost, config.EnvServerPort, config.EnvServerReadTimeout, config.EnvServerWriteTimeout, config.EnvServerShutdownTimeout)

	tests := []struct {
		name    string
		cfg     config.ServerConfig
		wantErr bool
	}{
		{"defaults", config.ServerConfig{}, false},
		{"bad port", config.ServerConfig{Port: 70000}, true},
		{"bad timeout", config.ServerConfig{ReadTimeout: "soon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Addr() != "0.0.0.0:8080" {
				t.Errorf("Addr() = %q", cfg.Addr())
			}
		})
	}
}

func TestModelConfig_Finalize(t *testing.T) {
	isolateEnv(t, config.EnvModelProvider, config.EnvModelName, config.EnvModelAPIKey, config.EnvModelTimeout, config.EnvModelTemperature, config.EnvGeminiAPIKey, config.EnvOpenAIAPIKey)

	hot := float32(3)

	tests := []struct {
		name     string
		cfg      config.ModelConfig
		wantName string
		wantErr  bool
	}{
		{"gemini default", config.ModelConfig{}, "gemini-2.0-flash", false},
		{"openai default", config.ModelConfig{Provider: config.ProviderOpenAI}, "gpt-4o", false},
		{"unknown provider", config.ModelConfig{Provider: "llama"}, "", true},
		{"bad timeout", config.ModelConfig{Timeout: "-5s"}, "", true},
		{"temperature out of range", config.ModelConfig{Temperature: &hot}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cfg.Name, tt.wantName)
			}
		})
	}
}

func TestModelConfig_ProviderKeyFallback(t *testing.T) {
	isolateEnv(t, config.EnvModelProvider, config.EnvModelAPIKey, config.EnvGeminiAPIKey)
	t.Setenv(config.EnvOpenAIAPIKey, "sk-test")

	cfg := config.ModelConfig{Provider: config.ProviderOpenAI}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want OPENAI_API_KEY fallback", cfg.APIKey)
	}
	if cfg.TimeoutDuration() != 120*time.Second {
		t.Errorf("TimeoutDuration() = %v", cfg.TimeoutDuration())
	}
}

func TestPipelineConfig_Finalize(t *testing.T) {
	isolateEnv(t, config.EnvPipelineTempDir, config.EnvPipelineMaxTextChars, config.EnvPipelineMinImageWidth, config.EnvPipelineMinImageHeight, config.EnvPipelineUploadConcurrency)
	t.Setenv(config.EnvPipelineMinImageWidth, "80")

	var cfg config.PipelineConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	if cfg.MinImageWidth != 80 || cfg.MinImageHeight != 50 {
		t.Errorf("image minimums = %dx%d", cfg.MinImageWidth, cfg.MinImageHeight)
	}
	if cfg.TempDir == "" {
		t.Error("TempDir should default to the system temp dir")
	}

	bad := config.PipelineConfig{MaxTextChars: -1}
	if err := bad.Finalize(); err == nil {
		t.Error("expected error for negative max_text_chars")
	}
}

func TestAPIConfig_BasePath(t *testing.T) {
	isolateEnv(t, config.EnvAPIBasePath)

	for _, path := range []string{"api", "/api/v1", "/"} {
		cfg := config.APIConfig{BasePath: path}
		if err := cfg.Finalize(); err == nil {
			t.Errorf("Finalize() with base_path %q should fail", path)
		}
	}
}
