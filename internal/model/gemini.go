package model

import (
	"context"

	"google.golang.org/genai"

	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/prompt"
)

type gemini struct {
	client      *genai.Client
	name        string
	temperature *float32
}

func newGemini(ctx context.Context, cfg *config.ModelConfig) (*gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &gemini{
		client:      client,
		name:        cfg.Name,
		temperature: cfg.Temperature,
	}, nil
}

func (g *gemini) Configured() bool {
	return true
}

// Generate sends the prompt text followed by every image as inline data and
// asks for a JSON response.
func (g *gemini) Generate(ctx context.Context, req *prompt.Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	parts = append(parts, genai.NewPartFromText(req.Text))
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MimeType))
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      g.temperature,
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.name,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		genCfg,
	)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}
