// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The core only ever sees these interfaces: the
// generation endpoint, the configuration source and the client state store are
// all collaborators supplied from the outside.
package ports

import (
	"context"
	"fmt"

	"github.com/doeshing/vibegen/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.vibegen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ConfigSaver persists configuration changes.
type ConfigSaver interface {
	Save(context.Context, domain.Config) error
	Path() string
}

// EndpointFactory builds generation endpoints for a model id.
type EndpointFactory interface {
	ForModel(modelID string) (Endpoint, error)
}

// Endpoint is the external generation service. Implementations issue exactly
// one request per Generate call and never retry.
type Endpoint interface {
	Name() string
	Generate(context.Context, GenerationRequest) (GenerationResponse, error)
}

// GenerationRequest is the payload handed to an endpoint.
type GenerationRequest struct {
	ModelID     string
	Content     string
	Temperature float64
	APIKey      string
}

// GenerationResponse carries the raw generated text, which may be empty.
type GenerationResponse struct {
	Text string
}

// EndpointError is returned by endpoints that know the HTTP status of a failure.
type EndpointError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *EndpointError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// StateStore persists independently keyed string values (theme, history,
// presets, API key). There is no transaction across keys.
type StateStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Location() string
	Close() error
}

// Clipboard provides cross-platform clipboard integration for copying results.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
