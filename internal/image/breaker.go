package image

import (
	"context"

	"codeberg.org/snonux/wordtoons/internal/breaker"
)

type breakerGenerator struct {
	next    Generator
	breaker *breaker.Breaker
}

// NewBreakerGenerator guards g with a circuit breaker shared by all four
// cards, so one outage fails the remaining cards fast
func NewBreakerGenerator(g Generator, b *breaker.Breaker) Generator {
	return &breakerGenerator{next: g, breaker: b}
}

func (b *breakerGenerator) Name() string {
	return b.next.Name()
}

func (b *breakerGenerator) GenerateCartoonImage(ctx context.Context, word string) (Reference, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.GenerateCartoonImage(ctx, word)
	})
	if err != nil {
		return "", upstreamError(b.Name(), word, err)
	}
	return result.(Reference), nil
}
