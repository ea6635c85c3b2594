package words

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI text provider
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration

	// BaseURL overrides the API endpoint, e.g. for a proxy or tests
	BaseURL string
}

// DefaultOpenAIConfig returns the defaults used when no model is configured
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       openai.GPT4oMini,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
}

// OpenAIFetcher resolves related words with a chat completion
type OpenAIFetcher struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float32
	timeout     time.Duration
}

// NewOpenAIFetcher creates a fetcher; a missing API key is reported per call
func NewOpenAIFetcher(config OpenAIConfig) *OpenAIFetcher {
	defaults := DefaultOpenAIConfig()
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Temperature == 0 {
		config.Temperature = defaults.Temperature
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIFetcher{
		client:      openai.NewClientWithConfig(clientConfig),
		apiKey:      config.APIKey,
		model:       config.Model,
		temperature: config.Temperature,
		timeout:     config.Timeout,
	}
}

// Name returns the provider name
func (f *OpenAIFetcher) Name() string {
	return "openai"
}

// FetchRelatedWords implements Fetcher
func (f *OpenAIFetcher) FetchRelatedWords(ctx context.Context, word string, lang Language) (WordSet, error) {
	if err := checkInput(f.Name(), word, lang); err != nil {
		return WordSet{}, err
	}
	if f.apiKey == "" {
		return WordSet{}, &TextGenerationError{Provider: f.Name(), Message: "OpenAI API key not configured", Local: true}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(word, lang)},
		},
		Temperature: f.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return WordSet{}, upstreamError(f.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return WordSet{}, &TextGenerationError{Provider: f.Name(), Message: "no choices returned"}
	}

	return parseRelatedWords(f.Name(), word, resp.Choices[0].Message.Content)
}
