package words

import (
	"context"

	"codeberg.org/snonux/wordtoons/internal/breaker"
)

type breakerFetcher struct {
	next    Fetcher
	breaker *breaker.Breaker
}

// NewBreakerFetcher guards f with a circuit breaker. While the breaker is
// open calls fail immediately with a TextGenerationError.
func NewBreakerFetcher(f Fetcher, b *breaker.Breaker) Fetcher {
	return &breakerFetcher{next: f, breaker: b}
}

func (b *breakerFetcher) Name() string {
	return b.next.Name()
}

func (b *breakerFetcher) FetchRelatedWords(ctx context.Context, word string, lang Language) (WordSet, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.FetchRelatedWords(ctx, word, lang)
	})
	if err != nil {
		return WordSet{}, upstreamError(b.Name(), err)
	}
	return result.(WordSet), nil
}
