package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"codeberg.org/snonux/wordtoons/internal/image"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// WordSetFor returns a complete, deterministic WordSet for word
func WordSetFor(word string) words.WordSet {
	return words.WordSet{
		Original:      word,
		Opposite:      "not-" + word,
		Similar:       word + "-ish",
		GenZ:          word + " fr",
		Translation:   "translated-" + word,
		Pronunciation: "pro-" + word,
	}
}

// MockFetcher is a scripted words.Fetcher. Words without an entry in
// Responses or Errors get WordSetFor(word). A word with a Gate blocks until
// the gate is closed or the context is done.
type MockFetcher struct {
	mu        sync.Mutex
	Responses map[string]words.WordSet
	Errors    map[string]error
	Gates     map[string]chan struct{}
	Calls     []string

	// Started receives the word of every call once it is recorded, if set
	Started chan string
}

// NewMockFetcher creates an empty MockFetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Responses: make(map[string]words.WordSet),
		Errors:    make(map[string]error),
		Gates:     make(map[string]chan struct{}),
	}
}

// Name returns the provider name
func (m *MockFetcher) Name() string {
	return "mock"
}

// FetchRelatedWords implements words.Fetcher
func (m *MockFetcher) FetchRelatedWords(ctx context.Context, word string, lang words.Language) (words.WordSet, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s/%s", word, lang))
	gate := m.Gates[word]
	resp, hasResp := m.Responses[word]
	err := m.Errors[word]
	started := m.Started
	m.mu.Unlock()

	if started != nil {
		started <- word
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return words.WordSet{}, &words.TextGenerationError{Provider: "mock", Message: "request cancelled", Err: ctx.Err()}
		}
	}

	if err != nil {
		return words.WordSet{}, err
	}
	if hasResp {
		return resp, nil
	}
	return WordSetFor(word), nil
}

// CallCount returns the number of calls so far
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockGenerator is a scripted image.Generator, keyed by word like MockFetcher.
// Words without a scripted response get "ref:<word>".
type MockGenerator struct {
	mu        sync.Mutex
	Responses map[string]image.Reference
	Errors    map[string]error
	Gates     map[string]chan struct{}
	Calls     []string

	// Started receives the word of every call once it is recorded, if set
	Started chan string
}

// NewMockGenerator creates an empty MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Responses: make(map[string]image.Reference),
		Errors:    make(map[string]error),
		Gates:     make(map[string]chan struct{}),
	}
}

// Name returns the provider name
func (m *MockGenerator) Name() string {
	return "mock"
}

// GenerateCartoonImage implements image.Generator
func (m *MockGenerator) GenerateCartoonImage(ctx context.Context, word string) (image.Reference, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, word)
	gate := m.Gates[word]
	resp, hasResp := m.Responses[word]
	err := m.Errors[word]
	started := m.Started
	m.mu.Unlock()

	if started != nil {
		started <- word
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", &image.ImageGenerationError{Provider: "mock", Word: word, Message: "request cancelled", Err: ctx.Err()}
		}
	}

	if err != nil {
		return "", err
	}
	if hasResp {
		return resp, nil
	}
	return image.Reference("ref:" + word), nil
}

// CallCount returns the number of calls so far
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsSnapshot returns a copy of the recorded calls
func (m *MockGenerator) CallsSnapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

// ExpectingGenerator is an image.Generator backed by testify's mock.Mock
// for tests that assert exact call expectations
type ExpectingGenerator struct {
	mock.Mock
}

// Name returns the provider name
func (m *ExpectingGenerator) Name() string {
	return "expecting"
}

// GenerateCartoonImage implements image.Generator
func (m *ExpectingGenerator) GenerateCartoonImage(ctx context.Context, word string) (image.Reference, error) {
	args := m.Called(word)
	return args.Get(0).(image.Reference), args.Error(1)
}
