package image

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/wordtoons/internal/breaker"
)

// ImageGenerationError reports that no image could be produced for a word
type ImageGenerationError struct {
	Provider string
	Word     string
	Message  string
	Err      error

	// Local is set when the error was raised before any request was sent
	Local bool
}

func (e *ImageGenerationError) Error() string {
	msg := fmt.Sprintf("%s: %s for %q", e.Provider, e.Message, e.Word)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ImageGenerationError) Unwrap() error {
	return e.Err
}

// BeforeRequest reports whether the service was never contacted
func (e *ImageGenerationError) BeforeRequest() bool {
	return e.Local
}

func upstreamError(provider, word string, err error) error {
	var imgErr *ImageGenerationError
	if errors.As(err, &imgErr) {
		return err
	}

	message := "image service request failed"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		message = "image service timed out"
	case errors.Is(err, context.Canceled):
		message = "request cancelled"
	case breaker.IsOpen(err):
		message = "image service temporarily unavailable"
	}
	return &ImageGenerationError{Provider: provider, Word: word, Message: message, Err: err}
}
