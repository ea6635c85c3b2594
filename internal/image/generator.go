package image

import (
	"context"
	"fmt"

	"codeberg.org/snonux/wordtoons/internal/words"
)

// Reference points at a generated image: a data URL or an http(s) URL
type Reference string

// ImageSet holds one image per card. The orchestrator only ever exposes a
// complete set.
type ImageSet struct {
	Original Reference `json:"original" yaml:"original"`
	Opposite Reference `json:"opposite" yaml:"opposite"`
	Similar  Reference `json:"similar" yaml:"similar"`
	GenZ     Reference `json:"genZ" yaml:"genZ"`
}

// Get returns the reference for slot
func (s ImageSet) Get(slot words.Slot) Reference {
	switch slot {
	case words.SlotOriginal:
		return s.Original
	case words.SlotOpposite:
		return s.Opposite
	case words.SlotSimilar:
		return s.Similar
	case words.SlotGenZ:
		return s.GenZ
	default:
		return ""
	}
}

// Set stores ref for slot
func (s *ImageSet) Set(slot words.Slot, ref Reference) {
	switch slot {
	case words.SlotOriginal:
		s.Original = ref
	case words.SlotOpposite:
		s.Opposite = ref
	case words.SlotSimilar:
		s.Similar = ref
	case words.SlotGenZ:
		s.GenZ = ref
	}
}

// Complete reports whether every slot has a reference
func (s ImageSet) Complete() bool {
	for _, slot := range words.Slots {
		if s.Get(slot) == "" {
			return false
		}
	}
	return true
}

// Generator produces a cartoon illustration for a single word
type Generator interface {
	// GenerateCartoonImage returns a reference to the image or an
	// *ImageGenerationError
	GenerateCartoonImage(ctx context.Context, word string) (Reference, error)

	// Name returns the provider name
	Name() string
}

func cartoonPrompt(word string) string {
	return fmt.Sprintf(
		"A cheerful, simple cartoon illustration of the concept %q. "+
			"Flat colours, bold outlines, friendly style, plain white background. "+
			"No text, letters or words anywhere in the image.",
		word)
}
