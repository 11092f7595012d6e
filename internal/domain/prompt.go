package domain

import (
	"fmt"
	"strings"
)

// DurationOptions are the clip lengths the master template knows how to pace.
var DurationOptions = []string{"5s", "8s", "10s", "15s"}

// DefaultDuration is used when a request or history item carries none.
const DefaultDuration = "8s"

// IsValidDuration reports whether d is one of DurationOptions.
func IsValidDuration(d string) bool {
	for _, opt := range DurationOptions {
		if opt == d {
			return true
		}
	}
	return false
}

// PromptRequest captures one generation request from the presentation layer.
type PromptRequest struct {
	Topic     string
	Vibestack string
	Duration  string
	ModelID   string
}

// SubmissionState is the per-submission lifecycle.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSucceeded  SubmissionState = "succeeded"
	StateFailed     SubmissionState = "failed"
)

// Terminal reports whether no further transition follows.
func (s SubmissionState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// FailureKind classifies a failed submission.
type FailureKind string

const (
	// FailureMissingCredential means no API key could be resolved.
	FailureMissingCredential FailureKind = "MissingCredential"
	// FailureInvalidCredential means the endpoint rejected the key.
	FailureInvalidCredential FailureKind = "InvalidCredential"
	// FailureEmptyGeneration means the endpoint answered without text.
	FailureEmptyGeneration FailureKind = "EmptyGeneration"
	// FailureEndpoint covers every other transport or endpoint failure.
	FailureEndpoint FailureKind = "EndpointError"
)

// NeedsCredential reports whether the user should be sent to key settings.
func (k FailureKind) NeedsCredential() bool {
	return k == FailureMissingCredential || k == FailureInvalidCredential
}

// Retryable reports whether resubmitting unchanged input may succeed.
func (k FailureKind) Retryable() bool {
	return k == FailureEmptyGeneration || k == FailureEndpoint
}

// GenerationError is the failure half of GenerationResult.
type GenerationError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// GenerationResult is either a success carrying Text or a failure carrying Err.
type GenerationResult struct {
	Text string
	Err  *GenerationError
}

// Succeeded reports whether the result is the success variant.
func (r GenerationResult) Succeeded() bool {
	return r.Err == nil && strings.TrimSpace(r.Text) != ""
}

// State maps the result to its terminal submission state.
func (r GenerationResult) State() SubmissionState {
	if r.Succeeded() {
		return StateSucceeded
	}
	return StateFailed
}

// Success builds the success variant.
func Success(text string) GenerationResult {
	return GenerationResult{Text: text}
}

// Failure builds the failure variant.
func Failure(kind FailureKind, message string, cause error) GenerationResult {
	return GenerationResult{Err: &GenerationError{Kind: kind, Message: message, Cause: cause}}
}
