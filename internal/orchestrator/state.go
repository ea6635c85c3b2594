package orchestrator

import (
	"codeberg.org/snonux/wordtoons/internal/image"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// State is the orchestrator's position in the query lifecycle
type State int

const (
	Idle State = iota
	FetchingWords
	FetchingImages
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FetchingWords:
		return "fetching-words"
	case FetchingImages:
		return "fetching-images"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the session state taken at one transition.
// Words and Images are nil when absent.
type Snapshot struct {
	State      State
	Generation uint64
	InputWord  string
	Language   words.Language
	Words      *words.WordSet
	Images     *image.ImageSet
	LastError  string
}

// IsFetchingWords reports whether the text request is in flight
func (s Snapshot) IsFetchingWords() bool {
	return s.State == FetchingWords
}

// IsFetchingImages reports whether the image requests are in flight
func (s Snapshot) IsFetchingImages() bool {
	return s.State == FetchingImages
}

// IsBusy reports whether any request is in flight
func (s Snapshot) IsBusy() bool {
	return s.IsFetchingWords() || s.IsFetchingImages()
}

// CanRefresh reports whether RefreshImages would be accepted
func (s Snapshot) CanRefresh() bool {
	return !s.IsBusy() && s.Words != nil
}

func (s Snapshot) clone() Snapshot {
	c := s
	if s.Words != nil {
		w := *s.Words
		c.Words = &w
	}
	if s.Images != nil {
		i := *s.Images
		c.Images = &i
	}
	return c
}
