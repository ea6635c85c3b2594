// Package orchestrator owns the session state of a word query and drives it
// through Idle, FetchingWords, FetchingImages, Ready and Error.
//
// One generation is one submit (or image refresh). It runs in its own
// goroutine with its own cancellable context, and its results are applied
// only while it is still the current generation. Observers receive a
// snapshot after every transition, in transition order.
package orchestrator

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/wordtoons/internal/image"
	"codeberg.org/snonux/wordtoons/internal/words"
)

// UnknownErrorMessage is shown for errors that are not client errors
const UnknownErrorMessage = "An unknown error occurred."

// Orchestrator coordinates the text and image clients
type Orchestrator struct {
	fetcher   words.Fetcher
	generator image.Generator
	logger    zerolog.Logger
	baseCtx   context.Context

	mu          sync.Mutex
	session     Snapshot
	cancel      context.CancelFunc
	closed      bool
	subscribers []func(Snapshot)
	pending     []Snapshot

	// notifyMu is held by the goroutine delivering pending snapshots
	notifyMu sync.Mutex

	wg sync.WaitGroup
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the logger used for transitions
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithContext sets the parent context of every generation
func WithContext(ctx context.Context) Option {
	return func(o *Orchestrator) {
		o.baseCtx = ctx
	}
}

// New creates an idle orchestrator
func New(fetcher words.Fetcher, generator image.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:   fetcher,
		generator: generator,
		logger:    zerolog.Nop(),
		baseCtx:   context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Subscribe registers fn to be called with a snapshot after every transition.
// Calls happen outside the orchestrator lock, so fn may call back into it.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = append(o.subscribers, fn)
}

// Snapshot returns a copy of the current session state
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.clone()
}

// Submit starts a new query for word. It returns false without any
// transition when the trimmed word is empty, the language is unsupported,
// a request is in flight, or the orchestrator is closed.
func (o *Orchestrator) Submit(word string, lang words.Language) bool {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" || !lang.Valid() {
		return false
	}

	o.mu.Lock()
	if o.closed || o.session.IsBusy() {
		o.mu.Unlock()
		o.logger.Debug().Str("word", normalized).Msg("submit ignored")
		return false
	}

	ctx, gen := o.startGenerationLocked()
	o.session = Snapshot{
		State:      FetchingWords,
		Generation: gen,
		InputWord:  normalized,
		Language:   lang,
	}
	o.commitLocked()

	go func() {
		defer o.wg.Done()
		o.runQuery(ctx, gen, normalized, lang)
	}()
	return true
}

// RefreshImages requests four new images for the current words. It returns
// false unless words are present and no request is in flight.
func (o *Orchestrator) RefreshImages() bool {
	o.mu.Lock()
	if o.closed || !o.session.CanRefresh() {
		o.mu.Unlock()
		o.logger.Debug().Msg("refresh ignored")
		return false
	}

	ctx, gen := o.startGenerationLocked()
	set := *o.session.Words
	o.session.Generation = gen
	o.session.State = FetchingImages
	o.session.Images = nil
	o.session.LastError = ""
	o.commitLocked()

	go func() {
		defer o.wg.Done()
		o.runImages(ctx, gen, set)
	}()
	return true
}

// Wait blocks until no generation is running
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Close cancels the running generation and waits for it to finish. Results
// arriving after Close are dropped.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// startGenerationLocked must be called with o.mu held
func (o *Orchestrator) startGenerationLocked() (context.Context, uint64) {
	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(o.baseCtx)
	o.cancel = cancel
	o.wg.Add(1)
	return ctx, o.session.Generation + 1
}

// commitLocked queues the current session for observers, releases o.mu and
// delivers
func (o *Orchestrator) commitLocked() {
	snap := o.session.clone()
	o.pending = append(o.pending, snap)
	o.mu.Unlock()

	o.logTransition(snap)
	o.deliver()
}

// apply runs fn on the session if gen is still current
func (o *Orchestrator) apply(gen uint64, fn func(*Snapshot)) bool {
	o.mu.Lock()
	if o.closed || o.session.Generation != gen {
		o.mu.Unlock()
		o.logger.Debug().Uint64("generation", gen).Msg("dropping stale result")
		return false
	}
	fn(&o.session)
	o.commitLocked()
	return true
}

// deliver drains pending snapshots. Only one goroutine drains at a time; the
// others leave their snapshots to it.
func (o *Orchestrator) deliver() {
	for {
		if !o.notifyMu.TryLock() {
			return
		}
		for {
			o.mu.Lock()
			batch := o.pending
			o.pending = nil
			subscribers := slices.Clone(o.subscribers)
			o.mu.Unlock()

			if len(batch) == 0 {
				break
			}
			for _, snap := range batch {
				for _, fn := range subscribers {
					fn(snap.clone())
				}
			}
		}
		o.notifyMu.Unlock()

		// A snapshot queued between the final drain and Unlock has nobody
		// left to deliver it
		o.mu.Lock()
		empty := len(o.pending) == 0
		o.mu.Unlock()
		if empty {
			return
		}
	}
}

func (o *Orchestrator) runQuery(ctx context.Context, gen uint64, word string, lang words.Language) {
	set, err := o.fetcher.FetchRelatedWords(ctx, word, lang)
	if err != nil {
		o.logger.Warn().Err(err).Uint64("generation", gen).Str("word", word).Msg("related words failed")
		o.apply(gen, func(s *Snapshot) {
			s.State = Error
			s.Words = nil
			s.Images = nil
			s.LastError = userMessage(err)
		})
		return
	}

	set.Original = word
	if !o.apply(gen, func(s *Snapshot) {
		s.State = FetchingImages
		s.Words = &set
		s.Images = nil
	}) {
		return
	}

	o.runImages(ctx, gen, set)
}

// runImages generates all four images and joins them. The first failure
// cancels the remaining calls and discards every result.
func (o *Orchestrator) runImages(ctx context.Context, gen uint64, set words.WordSet) {
	var refs [words.SlotCount]image.Reference

	g, gctx := errgroup.WithContext(ctx)
	for i, slot := range words.Slots {
		word := set.Word(slot)
		g.Go(func() error {
			ref, err := o.generator.GenerateCartoonImage(gctx, word)
			if err != nil {
				return err
			}
			if ref == "" {
				return &image.ImageGenerationError{Provider: o.generator.Name(), Word: word, Message: "empty image reference"}
			}
			refs[i] = ref
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		o.logger.Warn().Err(err).Uint64("generation", gen).Str("word", set.Original).Msg("image generation failed")
		o.apply(gen, func(s *Snapshot) {
			s.State = Error
			s.Images = nil
			s.LastError = userMessage(err)
		})
		return
	}

	var images image.ImageSet
	for i, slot := range words.Slots {
		images.Set(slot, refs[i])
	}
	o.apply(gen, func(s *Snapshot) {
		s.State = Ready
		s.Images = &images
	})
}

func (o *Orchestrator) logTransition(snap Snapshot) {
	event := o.logger.Info()
	if snap.State == Error {
		event = o.logger.Warn().Str("error", snap.LastError)
	}
	event.
		Uint64("generation", snap.Generation).
		Str("state", snap.State.String()).
		Str("word", snap.InputWord).
		Str("language", snap.Language.String()).
		Msg("state transition")
}

// userMessage converts a client error into the text shown in the error banner
func userMessage(err error) string {
	var textErr *words.TextGenerationError
	var imgErr *image.ImageGenerationError

	switch {
	case errors.As(err, &textErr) && textErr.Message != "":
		return "Could not fetch related words: " + textErr.Message + "."
	case errors.As(err, &imgErr) && imgErr.Message != "":
		return "Could not generate images: " + imgErr.Message + "."
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out."
	default:
		return UnknownErrorMessage
	}
}
