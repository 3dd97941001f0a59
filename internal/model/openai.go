package model

import (
	"context"
	"encoding/base64"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/JaimeStill/neura/internal/config"
	"github.com/JaimeStill/neura/internal/prompt"
)

type openAI struct {
	client      openai.Client
	name        string
	temperature *float32
}

func newOpenAI(cfg *config.ModelConfig) *openAI {
	return &openAI{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		name:        cfg.Name,
		temperature: cfg.Temperature,
	}
}

func (o *openAI) Configured() bool {
	return true
}

// Generate sends a single user message carrying the prompt text and each
// image as a base64 data URI.
func (o *openAI) Generate(ctx context.Context, req *prompt.Request) (string, error) {
	content := make(responses.ResponseInputMessageContentListParam, 0, len(req.Images)+1)
	content = append(content, responses.ResponseInputContentParamOfInputText(req.Text))
	for _, img := range req.Images {
		content = append(content, responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: openai.String(dataURI(img)),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		})
	}

	params := responses.ResponseNewParams{
		Model: o.name,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(content, "user"),
			},
		},
	}
	if o.temperature != nil {
		params.Temperature = openai.Float(float64(*o.temperature))
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}

	return resp.OutputText(), nil
}

func dataURI(img prompt.Image) string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
