package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Catalog holds the model IDs usable for each job, sorted
type Catalog struct {
	Text  []string
	Image []string
}

// Lister handles listing available models
type Lister struct {
	openAIKey string
	geminiKey string
	client    *openai.Client
	out       io.Writer
}

// NewLister creates a new model lister. Providers without a key are skipped.
func NewLister(openAIKey, geminiKey string) *Lister {
	return newLister(openAIKey, geminiKey, openai.DefaultConfig(openAIKey), os.Stdout)
}

func newLister(openAIKey, geminiKey string, config openai.ClientConfig, out io.Writer) *Lister {
	return &Lister{
		openAIKey: openAIKey,
		geminiKey: geminiKey,
		client:    openai.NewClientWithConfig(config),
		out:       out,
	}
}

// ListAvailableModels prints the text and image models of every configured provider
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.openAIKey == "" && l.geminiKey == "" {
		return fmt.Errorf("no API key found. Set OPENAI_API_KEY or GEMINI_API_KEY, or configure them in .wordtoons.yaml")
	}

	if l.geminiKey != "" {
		catalog, err := l.geminiCatalog(ctx)
		if err != nil {
			return err
		}
		l.print("Gemini", catalog)
	}

	if l.openAIKey != "" {
		catalog, err := l.openAICatalog(ctx)
		if err != nil {
			return err
		}
		l.print("OpenAI", catalog)
	}

	return nil
}

func (l *Lister) openAICatalog(ctx context.Context) (Catalog, error) {
	list, err := l.client.ListModels(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list OpenAI models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, model := range list.Models {
		ids = append(ids, model.ID)
	}
	return categorizeOpenAI(ids), nil
}

func (l *Lister) geminiCatalog(ctx context.Context) (Catalog, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var found []geminiModel
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to list Gemini models: %w", err)
		}
		found = append(found, geminiModel{Name: model.Name, Actions: model.SupportedActions})
	}
	return categorizeGemini(found), nil
}

func (l *Lister) print(provider string, catalog Catalog) {
	fmt.Fprintf(l.out, "Available %s Models:\n", provider)

	fmt.Fprintln(l.out, "\nText Models (related words and translation):")
	printIDs(l.out, catalog.Text, "No text models found")

	fmt.Fprintln(l.out, "\nImage Generation Models:")
	printIDs(l.out, catalog.Image, "No image models found")
	fmt.Fprintln(l.out)
}

func printIDs(w io.Writer, ids []string, empty string) {
	if len(ids) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}

func categorizeOpenAI(ids []string) Catalog {
	var catalog Catalog
	for _, id := range ids {
		switch {
		case strings.Contains(id, "dall-e") || strings.Contains(id, "gpt-image"):
			catalog.Image = append(catalog.Image, id)
		case containsAny(id, "tts", "audio", "realtime", "transcribe", "embedding", "search", "moderation"):
		case strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4"):
			catalog.Text = append(catalog.Text, id)
		}
	}
	sort.Strings(catalog.Text)
	sort.Strings(catalog.Image)
	return catalog
}

type geminiModel struct {
	Name    string
	Actions []string
}

func categorizeGemini(found []geminiModel) Catalog {
	var catalog Catalog
	for _, m := range found {
		id := strings.TrimPrefix(m.Name, "models/")
		switch {
		case strings.Contains(id, "imagen") || strings.Contains(id, "-image"):
			catalog.Image = append(catalog.Image, id)
		case strings.Contains(id, "embedding") || strings.Contains(id, "tts"):
		case hasAction(m.Actions, "generateContent"):
			catalog.Text = append(catalog.Text, id)
		}
	}
	sort.Strings(catalog.Text)
	sort.Strings(catalog.Image)
	return catalog
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAction(actions []string, want string) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}
