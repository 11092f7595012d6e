// Package generate turns a prompt request into one call against the
// generation endpoint and classifies the outcome.
package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/vibegen/internal/domain"
)

var (
	ErrBlankTopic      = errors.New("topic must not be blank")
	ErrBlankVibestack  = errors.New("vibestack must not be blank")
	ErrInvalidDuration = errors.New("duration is not supported")
)

// ValidationError rejects a request before any state transition.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the preconditions for submission. An empty duration is
// accepted and means the template default is not enforced by the caller.
func Validate(req domain.PromptRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return &ValidationError{Field: "topic", Err: ErrBlankTopic}
	}
	if strings.TrimSpace(req.Vibestack) == "" {
		return &ValidationError{Field: "vibestack", Err: ErrBlankVibestack}
	}
	if req.Duration != "" && !domain.IsValidDuration(req.Duration) {
		return &ValidationError{
			Field: "duration",
			Err:   fmt.Errorf("%w: %s (choose one of %s)", ErrInvalidDuration, req.Duration, strings.Join(domain.DurationOptions, ", ")),
		}
	}
	return nil
}

// CanSubmit mirrors the presentation layer's enabled/disabled generate button.
func CanSubmit(req domain.PromptRequest) bool {
	return Validate(req) == nil
}
