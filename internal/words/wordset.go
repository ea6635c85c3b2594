package words

import (
	"fmt"
	"strings"
)

// Language is a supported translation target
type Language string

const (
	Hindi     Language = "Hindi"
	Marathi   Language = "Marathi"
	Bengali   Language = "Bengali"
	Tamil     Language = "Tamil"
	Telugu    Language = "Telugu"
	Gujarati  Language = "Gujarati"
	Kannada   Language = "Kannada"
	Malayalam Language = "Malayalam"
	Punjabi   Language = "Punjabi"
	Urdu      Language = "Urdu"
	Odia      Language = "Odia"
	Assamese  Language = "Assamese"
)

// DefaultLanguage is preselected in the GUI and used when none is configured
const DefaultLanguage = Marathi

var languages = []Language{
	Hindi, Marathi, Bengali, Tamil, Telugu, Gujarati,
	Kannada, Malayalam, Punjabi, Urdu, Odia, Assamese,
}

// Languages returns all supported languages in display order
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// ParseLanguage resolves a language name case-insensitively
func ParseLanguage(name string) (Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLanguage, nil
	}
	for _, l := range languages {
		if strings.EqualFold(string(l), name) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (supported: %s)", name, strings.Join(LanguageNames(), ", "))
}

// LanguageNames returns the names of all supported languages
func LanguageNames() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = string(l)
	}
	return names
}

// Valid reports whether l is one of the supported languages
func (l Language) Valid() bool {
	for _, known := range languages {
		if l == known {
			return true
		}
	}
	return false
}

func (l Language) String() string {
	return string(l)
}

// WordSet holds the related words produced for one query. It is a value:
// a new query replaces it wholesale.
type WordSet struct {
	Original      string `json:"original" yaml:"original"`
	Opposite      string `json:"opposite" yaml:"opposite"`
	Similar       string `json:"similar" yaml:"similar"`
	GenZ          string `json:"genZ" yaml:"genZ"`
	Translation   string `json:"translation" yaml:"translation"`
	Pronunciation string `json:"pronunciation" yaml:"pronunciation"`
}

// Validate returns an error naming the first empty field
func (w WordSet) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"original", w.Original},
		{"opposite", w.Opposite},
		{"similar", w.Similar},
		{"genZ", w.GenZ},
		{"translation", w.Translation},
		{"pronunciation", w.Pronunciation},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing field %q", f.name)
		}
	}
	return nil
}

// Word returns the word shown on the card for slot
func (w WordSet) Word(slot Slot) string {
	switch slot {
	case SlotOriginal:
		return w.Original
	case SlotOpposite:
		return w.Opposite
	case SlotSimilar:
		return w.Similar
	case SlotGenZ:
		return w.GenZ
	default:
		return ""
	}
}

// Slot identifies one of the four illustrated cards
type Slot int

const (
	SlotOriginal Slot = iota
	SlotOpposite
	SlotSimilar
	SlotGenZ
)

// SlotCount is the number of illustrated cards per generation
const SlotCount = 4

// Slots lists the card slots in display order
var Slots = [SlotCount]Slot{SlotOriginal, SlotOpposite, SlotSimilar, SlotGenZ}

func (s Slot) String() string {
	switch s {
	case SlotOriginal:
		return "original"
	case SlotOpposite:
		return "opposite"
	case SlotSimilar:
		return "similar"
	case SlotGenZ:
		return "genz"
	default:
		return "unknown"
	}
}

// Title is the card heading for the slot
func (s Slot) Title() string {
	switch s {
	case SlotOriginal:
		return "Original Word"
	case SlotOpposite:
		return "Opposite Word"
	case SlotSimilar:
		return "Similar Word"
	case SlotGenZ:
		return "Gen-Z Word"
	default:
		return "Unknown"
	}
}
