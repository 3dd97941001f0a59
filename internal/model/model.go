// Package model provides the multimodal generation client used to turn an
// assembled prompt into a study guide response. The client is built once
// from configuration; when no API key is available an unconfigured client
// is returned so the service can start and report model_unavailable on use.
package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/prompt"
	"github.com/JaimeStill/neura/pkg/failure"
)

// ErrUnavailable reports that the model is not configured or could not
// produce a response.
var ErrUnavailable = failure.New(failure.ModelUnavailable, "model unavailable")

// Client generates raw text from a prompt request.
type Client interface {
	Configured() bool
	Generate(ctx context.Context, req *prompt.Request) (string, error)
}

// New builds the client for the configured provider.
func New(ctx context.Context, cfg *config.ModelConfig, logger *slog.Logger) (Client, error) {
	logger = logger.With("system", "model")

	if !cfg.Configured() {
		logger.Warn("model api key not set, generation disabled", "provider", cfg.Provider)
		return Unconfigured(), nil
	}

	var (
		c   Client
		err error
	)

	switch cfg.Provider {
	case config.ProviderGemini:
		c, err = newGemini(ctx, cfg)
	case config.ProviderOpenAI:
		c = newOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	logger.Info("model client ready", "provider", cfg.Provider, "name", cfg.Name)
	return c, nil
}

type unconfigured struct{}

// Unconfigured returns a client that reports itself unconfigured and
// refuses every request.
func Unconfigured() Client {
	return unconfigured{}
}

func (unconfigured) Configured() bool {
	return false
}

func (unconfigured) Generate(context.Context, *prompt.Request) (string, error) {
	return "", ErrUnavailable
}
