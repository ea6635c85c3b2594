package image

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Imagen model used when none is configured
const DefaultGeminiModel = "imagen-4.0-generate-001"

// GeminiConfig holds configuration for the Imagen provider
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// imageModel is the part of *genai.Models the generator needs
type imageModel interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GeminiGenerator renders cartoons with Imagen through the Gemini API
type GeminiGenerator struct {
	models  imageModel
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a generator. Without an API key every call
// fails with an ImageGenerationError.
func NewGeminiGenerator(ctx context.Context, config GeminiConfig) (*GeminiGenerator, error) {
	g := newGeminiGenerator(nil, config)
	if config.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ImageGenerationError{Provider: "gemini", Message: "failed to create client", Err: err}
	}
	g.models = client.Models
	return g, nil
}

func newGeminiGenerator(models imageModel, config GeminiConfig) *GeminiGenerator {
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}
	if config.Timeout <= 0 {
		config.Timeout = 120 * time.Second
	}
	return &GeminiGenerator{models: models, model: config.Model, timeout: config.Timeout}
}

// Name returns the provider name
func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// GenerateCartoonImage implements Generator
func (g *GeminiGenerator) GenerateCartoonImage(ctx context.Context, word string) (Reference, error) {
	if strings.TrimSpace(word) == "" {
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "word is empty", Local: true}
	}
	if g.models == nil {
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "Gemini API key not configured", Local: true}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.models.GenerateImages(ctx, g.model, cartoonPrompt(word), &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
	})
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", upstreamError(g.Name(), word, err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: "no image returned"}
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		message := "empty image payload"
		if generated != nil && generated.RAIFilteredReason != "" {
			message = "image blocked by safety filter: " + generated.RAIFilteredReason
		}
		return "", &ImageGenerationError{Provider: g.Name(), Word: word, Message: message}
	}

	return DataURL(generated.Image.MIMEType, generated.Image.ImageBytes), nil
}
