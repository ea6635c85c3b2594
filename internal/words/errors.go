package words

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/wordtoons/internal/breaker"
)

// TextGenerationError reports that related words could not be produced:
// the service failed, timed out, or returned malformed data.
type TextGenerationError struct {
	Provider string
	Message  string
	Err      error

	// Local is set when the error was raised before any request was sent
	Local bool
}

func (e *TextGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return e.Provider + ": " + e.Message
}

func (e *TextGenerationError) Unwrap() error {
	return e.Err
}

// BeforeRequest reports whether the service was never contacted
func (e *TextGenerationError) BeforeRequest() bool {
	return e.Local
}

// upstreamError converts a failed service call into a TextGenerationError
func upstreamError(provider string, err error) error {
	var textErr *TextGenerationError
	if errors.As(err, &textErr) {
		return err
	}

	message := "text service request failed"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		message = "text service timed out"
	case errors.Is(err, context.Canceled):
		message = "request cancelled"
	case breaker.IsOpen(err):
		message = "text service temporarily unavailable"
	}
	return &TextGenerationError{Provider: provider, Message: message, Err: err}
}
