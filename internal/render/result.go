package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/wordtoons/internal/orchestrator"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// Result is the machine-readable view of a finished query
type Result struct {
	Word     string            `json:"word" yaml:"word"`
	Language string            `json:"language" yaml:"language"`
	State    string            `json:"state" yaml:"state"`
	Words    *words.WordSet    `json:"words,omitempty" yaml:"words,omitempty"`
	Images   map[string]string `json:"images,omitempty" yaml:"images,omitempty"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResult builds a Result from snap. Images are listed by saved file path
// when files has one for the slot, by reference otherwise.
func NewResult(snap orchestrator.Snapshot, files map[words.Slot]string) Result {
	r := Result{
		Word:     snap.InputWord,
		Language: snap.Language.String(),
		State:    snap.State.String(),
		Words:    snap.Words,
		Error:    snap.LastError,
	}
	if snap.Images != nil {
		r.Images = make(map[string]string, words.SlotCount)
		for _, slot := range words.Slots {
			if path := files[slot]; path != "" {
				r.Images[slot.String()] = path
			} else {
				r.Images[slot.String()] = string(snap.Images.Get(slot))
			}
		}
	}
	return r
}

// JSON writes result as indented JSON
func JSON(w io.Writer, result Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAML writes result as a YAML document
func YAML(w io.Writer, result Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
