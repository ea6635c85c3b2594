package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key found")
}

func TestListAvailableModels_OpenAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-4o-mini","object":"model"},
			{"id":"dall-e-3","object":"model"},
			{"id":"tts-1","object":"model"},
			{"id":"gpt-image-1","object":"model"}
		]}`))
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	var out bytes.Buffer
	lister := newLister("test-key", "", config, &out)

	require.NoError(t, lister.ListAvailableModels(context.Background()))

	printed := out.String()
	assert.Contains(t, printed, "Available OpenAI Models:")
	assert.Contains(t, printed, "  gpt-4o-mini\n")
	assert.Contains(t, printed, "  dall-e-3\n")
	assert.NotContains(t, printed, "tts-1")
	assert.NotContains(t, printed, "Gemini")
}

func TestCategorizeOpenAI(t *testing.T) {
	catalog := categorizeOpenAI([]string{
		"gpt-4o", "gpt-4o-mini-tts", "dall-e-2", "gpt-image-1", "o3-mini",
		"text-embedding-3-small", "gpt-4o-audio-preview", "whisper-1", "gpt-4o-mini",
	})

	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini", "o3-mini"}, catalog.Text)
	assert.Equal(t, []string{"dall-e-2", "gpt-image-1"}, catalog.Image)
}

func TestCategorizeGemini(t *testing.T) {
	catalog := categorizeGemini([]geminiModel{
		{Name: "models/gemini-2.5-flash", Actions: []string{"generateContent", "countTokens"}},
		{Name: "models/imagen-4.0-generate-001", Actions: []string{"predict"}},
		{Name: "models/gemini-2.5-flash-image", Actions: []string{"generateContent"}},
		{Name: "models/text-embedding-004", Actions: []string{"embedContent"}},
		{Name: "models/gemini-2.5-flash-preview-tts", Actions: []string{"generateContent"}},
		{Name: "models/aqa", Actions: []string{"generateAnswer"}},
	})

	assert.Equal(t, []string{"gemini-2.5-flash"}, catalog.Text)
	assert.Equal(t, []string{"gemini-2.5-flash-image", "imagen-4.0-generate-001"}, catalog.Image)
}

func TestPrintIDs(t *testing.T) {
	var out bytes.Buffer
	printIDs(&out, nil, "No image models found")
	assert.Equal(t, "  No image models found\n", out.String())

	out.Reset()
	printIDs(&out, []string{"a", "b"}, "unused")
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestListAvailableModels_Integration(t *testing.T) {
	openAIKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if openAIKey == "" && geminiKey == "" {
		t.Skip("Skipping integration test: no API key set")
	}

	var out bytes.Buffer
	lister := newLister(openAIKey, geminiKey, openai.DefaultConfig(openAIKey), &out)
	require.NoError(t, lister.ListAvailableModels(context.Background()))
	assert.Contains(t, out.String(), "Available")
}
