package image

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI image provider
type OpenAIConfig struct {
	APIKey  string
	Model   string // dall-e-3, dall-e-2 or gpt-image-1
	Size    string
	Quality string
	Style   string // vivid or natural, dall-e-3 only
	Timeout time.Duration

	// BaseURL overrides the API endpoint, e.g. for a proxy or tests
	BaseURL string
}

// DefaultOpenAIConfig returns the defaults used for unset fields
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:   openai.CreateImageModelDallE3,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityStandard,
		Style:   openai.CreateImageStyleVivid,
		Timeout: 120 * time.Second,
	}
}

// OpenAIGenerator renders cartoons with the OpenAI image API
type OpenAIGenerator struct {
	client  *openai.Client
	apiKey  string
	model   string
	size    string
	quality string
	style   string
	timeout time.Duration
}

// NewOpenAIGenerator creates a generator; a missing API key is reported per call
func NewOpenAIGenerator(config OpenAIConfig) *OpenAIGenerator {
	defaults := DefaultOpenAIConfig()
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Size == "" {
		config.Size = defaults.Size
	}
	if config.Quality == "" {
		config.Quality = defaults.Quality
	}
	if config.Style == "" {
		config.Style = defaults.Style
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(clientConfig),
		apiKey:  config.APIKey,
		model:   config.Model,
		size:    config.Size,
		quality: config.Quality,
		style:   config.Style,
		timeout: config.Timeout,
	}
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return "openai"
}

// GenerateCartoonImage implements Generator
func (g *OpenAIGenerator) GenerateCartoonImage(ctx context.Context, word string) (Reference, error) {
	if strings.TrimSpace(word) == "" {
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "word is empty", Local: true}
	}
	if g.apiKey == "" {
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "OpenAI API key not configured", Local: true}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateImage(ctx, g.request(word))
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", upstreamError(g.Name(), word, err)
	}
	if len(resp.Data) == 0 {
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "no image returned"}
	}

	data := resp.Data[0]
	if data.B64JSON != "" {
		raw, err := base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "invalid image payload", Err: err}
		}
		return DataURL("", raw), nil
	}
	if data.URL != "" {
		return Reference(data.URL), nil
	}
	return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "empty image payload"}
}

func (g *OpenAIGenerator) request(word string) openai.ImageRequest {
	req := openai.ImageRequest{
		Prompt:  cartoonPrompt(word),
		Model:   g.model,
		N:       1,
		Size:    g.size,
		Quality: g.quality,
	}
	// gpt-image models always answer with base64 and reject these fields
	if strings.HasPrefix(g.model, "dall-e") {
		req.ResponseFormat = openai.CreateImageResponseFormatB64JSON
	}
	if g.model == openai.CreateImageModelDallE3 {
		req.Style = g.style
	}
	return req
}
