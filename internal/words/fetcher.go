package words

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Fetcher resolves the related words for a single input word
type Fetcher interface {
	// FetchRelatedWords returns a fully populated WordSet or a
	// *TextGenerationError. Original is set to word as given.
	FetchRelatedWords(ctx context.Context, word string, lang Language) (WordSet, error)

	// Name returns the provider name
	Name() string
}

// relatedWords is the JSON object the text service is asked to return
type relatedWords struct {
	Opposite      string `json:"opposite"`
	Similar       string `json:"similar"`
	GenZ          string `json:"genZ"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

const systemPrompt = "You are a playful vocabulary assistant for language learners. You always answer with a single JSON object and nothing else."

func checkInput(provider, word string, lang Language) error {
	if strings.TrimSpace(word) == "" {
		return &TextGenerationError{Provider: provider, Message: "word is empty", Local: true}
	}
	if !lang.Valid() {
		return &TextGenerationError{Provider: provider, Message: fmt.Sprintf("unsupported language %q", string(lang)), Local: true}
	}
	return nil
}

func buildPrompt(word string, lang Language) string {
	return strings.Join([]string{
		fmt.Sprintf("For the English word %q provide:", word),
		"- opposite: a single-word antonym",
		"- similar: a single-word synonym",
		"- genZ: a short Gen-Z slang term with the same meaning",
		fmt.Sprintf("- translation: the word translated into %s, written in its native script", lang),
		fmt.Sprintf("- pronunciation: how to pronounce the %s translation, written in Latin letters", lang),
		`Return ONLY valid JSON without markdown: {"opposite":"...","similar":"...","genZ":"...","translation":"...","pronunciation":"..."}`,
	}, "\n")
}

// parseRelatedWords decodes the service output into a WordSet. Output with
// noise around the JSON object is tolerated; missing fields are not.
func parseRelatedWords(provider, word, raw string) (WordSet, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return WordSet{}, &TextGenerationError{Provider: provider, Message: "empty response"}
	}

	var payload relatedWords
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		object := extractJSONObject(text)
		if object == "" {
			return WordSet{}, &TextGenerationError{Provider: provider, Message: "malformed response", Err: err}
		}
		if err := json.Unmarshal([]byte(object), &payload); err != nil {
			return WordSet{}, &TextGenerationError{Provider: provider, Message: "malformed response", Err: err}
		}
	}

	set := WordSet{
		Original:      word,
		Opposite:      strings.TrimSpace(payload.Opposite),
		Similar:       strings.TrimSpace(payload.Similar),
		GenZ:          strings.TrimSpace(payload.GenZ),
		Translation:   strings.TrimSpace(payload.Translation),
		Pronunciation: strings.TrimSpace(payload.Pronunciation),
	}
	if err := set.Validate(); err != nil {
		return WordSet{}, &TextGenerationError{Provider: provider, Message: "incomplete response", Err: err}
	}
	return set, nil
}

func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
