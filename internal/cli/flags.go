package cli

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/snonux/wordtoons/internal/logging"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// Supported provider and output format names
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputDir  string
	Language   string
	Format     string
	BatchFile  string
	SkipSave   bool
	ListModels bool
	Archive    bool
	LogLevel   string

	// Text provider flags
	TextProvider string
	TextModel    string
	TextTimeout  time.Duration

	// Image provider flags
	ImageProvider string
	ImageModel    string
	ImageTimeout  time.Duration

	// OpenAI image flags
	OpenAIImageSize    string
	OpenAIImageQuality string
	OpenAIImageStyle   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Language:           string(words.DefaultLanguage),
		Format:             FormatText,
		LogLevel:           logging.DefaultLevel,
		TextProvider:       ProviderGemini,
		TextTimeout:        60 * time.Second,
		ImageProvider:      ProviderGemini,
		ImageTimeout:       120 * time.Second,
		OpenAIImageSize:    "1024x1024",
		OpenAIImageQuality: "standard",
		OpenAIImageStyle:   "vivid",
	}
}

// Validate checks the flag values that have a fixed set of choices
func (f *Flags) Validate() error {
	if _, err := words.ParseLanguage(f.Language); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(f.LogLevel); err != nil {
		return err
	}

	switch strings.ToLower(f.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q (use text, json or yaml)", f.Format)
	}

	for name, provider := range map[string]string{"text": f.TextProvider, "image": f.ImageProvider} {
		switch strings.ToLower(provider) {
		case ProviderGemini, ProviderOpenAI:
		default:
			return fmt.Errorf("unsupported %s provider %q (use gemini or openai)", name, provider)
		}
	}

	if f.TextTimeout <= 0 || f.ImageTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// ParsedLanguage returns the configured language, falling back to the default
func (f *Flags) ParsedLanguage() words.Language {
	lang, err := words.ParseLanguage(f.Language)
	if err != nil {
		return words.DefaultLanguage
	}
	return lang
}
