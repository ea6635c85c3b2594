package words

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no text model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig holds configuration for the Gemini text provider
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// contentGenerator is the part of *genai.Models the fetcher needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiFetcher resolves related words with a structured Gemini response
type GeminiFetcher struct {
	models      contentGenerator
	model       string
	temperature float32
	timeout     time.Duration
}

// NewGeminiFetcher creates a fetcher backed by the Gemini API. Without an API
// key no client is created and every call fails with a TextGenerationError.
func NewGeminiFetcher(ctx context.Context, config GeminiConfig) (*GeminiFetcher, error) {
	f := newGeminiFetcher(nil, config)
	if config.APIKey == "" {
		return f, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &TextGenerationError{Provider: "gemini", Message: "failed to create client", Err: err}
	}
	f.models = client.Models
	return f, nil
}

func newGeminiFetcher(models contentGenerator, config GeminiConfig) *GeminiFetcher {
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	return &GeminiFetcher{
		models:      models,
		model:       config.Model,
		temperature: config.Temperature,
		timeout:     config.Timeout,
	}
}

// Name returns the provider name
func (f *GeminiFetcher) Name() string {
	return "gemini"
}

// FetchRelatedWords implements Fetcher
func (f *GeminiFetcher) FetchRelatedWords(ctx context.Context, word string, lang Language) (WordSet, error) {
	if err := checkInput(f.Name(), word, lang); err != nil {
		return WordSet{}, err
	}
	if f.models == nil {
		return WordSet{}, &TextGenerationError{Provider: f.Name(), Message: "Gemini API key not configured", Local: true}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       genai.Ptr(f.temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    relatedWordsSchema(),
	}

	resp, err := f.models.GenerateContent(ctx, f.model, genai.Text(buildPrompt(word, lang)), config)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return WordSet{}, upstreamError(f.Name(), err)
	}

	return parseRelatedWords(f.Name(), word, responseText(resp))
}

func relatedWordsSchema() *genai.Schema {
	fields := []string{"opposite", "similar", "genZ", "translation", "pronunciation"}
	properties := make(map[string]*genai.Schema, len(fields))
	for _, field := range fields {
		properties[field] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   fields,
	}
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
