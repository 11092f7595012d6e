// Package ai provides the generation endpoint factory and its transports.
//
// Every model declared in the configuration routes to one of three endpoints:
//   - Gemini: the Google GenAI SDK, used for the default catalog
//   - OpenAI: the official OpenAI SDK, for chat-completion models
//   - HTTP: a generic JSON client whose wire shape comes from the model's APIFormat
//
// Each endpoint issues exactly one request per Generate call and never retries.
// The caller supplies the key on every request, so no client state outlives a call.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// ====================================================================================
// Factory
// ====================================================================================

// Factory creates endpoint instances for model ids declared in the config.
// It maintains a single HTTP client shared across all endpoints.
type Factory struct {
	models     []domain.ModelOption
	httpClient *http.Client
}

// NewFactory creates an endpoint factory over the configured model catalog.
// A nil client gets one without a timeout: the core imposes none.
func NewFactory(models []domain.ModelOption, client *http.Client) *Factory {
	if client == nil {
		client = &http.Client{}
	}
	return &Factory{models: models, httpClient: client}
}

// ForModel returns the endpoint for modelID. Ids missing from the catalog are
// passed through to Gemini unchanged.
func (f *Factory) ForModel(modelID string) (ports.Endpoint, error) {
	model := domain.ModelOption{ID: modelID}
	for _, m := range f.models {
		if m.ID == modelID {
			model = m
			break
		}
	}

	switch model.EffectiveProvider() {
	case domain.ProviderGemini:
		return newGeminiEndpoint(model, f.httpClient), nil
	case domain.ProviderOpenAI:
		return newOpenAIEndpoint(model, f.httpClient), nil
	case domain.ProviderHTTP:
		if strings.TrimSpace(model.Endpoint) == "" {
			return nil, fmt.Errorf("model %s: http provider requires an endpoint", model.ID)
		}
		return newHTTPEndpoint(model, f.httpClient), nil
	default:
		return nil, fmt.Errorf("model %s: unsupported provider %q", model.ID, model.Provider)
	}
}

var _ ports.EndpointFactory = (*Factory)(nil)

// ====================================================================================
// HTTP Endpoint
// ====================================================================================

// httpEndpoint implements a generic chat-completion style client. Request
// headers and the response path come from the model's APIFormat.
type httpEndpoint struct {
	model      domain.ModelOption
	httpClient *http.Client
}

func newHTTPEndpoint(model domain.ModelOption, client *http.Client) ports.Endpoint {
	return &httpEndpoint{model: model, httpClient: client}
}

func (p *httpEndpoint) Name() string {
	return string(domain.ProviderHTTP)
}

// Generate sends one POST with the compiled prompt as a single user message.
func (p *httpEndpoint) Generate(ctx context.Context, req ports.GenerationRequest) (ports.GenerationResponse, error) {
	body, err := p.buildRequestBody(req)
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	p.setAuthHeaders(httpReq, req.APIKey)
	p.setExtraHeaders(httpReq)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.GenerationResponse{}, &ports.EndpointError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return ports.GenerationResponse{}, &ports.EndpointError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.Status),
		}
	}

	text, err := p.parseResponse(raw)
	if err != nil {
		return ports.GenerationResponse{}, err
	}
	return ports.GenerationResponse{Text: text}, nil
}

func (p *httpEndpoint) buildRequestBody(req ports.GenerationRequest) ([]byte, error) {
	request := map[string]interface{}{
		"model": req.ModelID,
		"messages": []map[string]string{
			{"role": "user", "content": req.Content},
		},
		"temperature": req.Temperature,
	}
	return json.Marshal(request)
}

func (p *httpEndpoint) setAuthHeaders(req *http.Request, apiKey string) {
	if apiKey == "" {
		return
	}
	format := p.model.APIFormat
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+apiKey)
}

func (p *httpEndpoint) setExtraHeaders(req *http.Request) {
	for key, value := range p.model.APIFormat.ExtraHeaders {
		req.Header.Set(key, value)
	}
}

func (p *httpEndpoint) parseResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	path := p.model.APIFormat.GetResponseJSONPath()
	content, err := extractJSONPath(response, path)
	if errors.Is(err, errPathAbsent) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("extract from path '%s': %w", path, err)
	}
	return content, nil
}

// errorMessage pulls a human readable message out of a JSON error body,
// falling back to the HTTP status line.
func errorMessage(body []byte, status string) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var detailed struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &detailed); err == nil && detailed.Message != "" {
			return detailed.Message
		}
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
			return plain
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
		return text
	}
	return status
}

// errPathAbsent marks a path whose field or index is missing from an otherwise
// well-formed response. Callers treat it as no text.
var errPathAbsent = errors.New("path absent")

// extractJSONPath extracts a string value from a nested JSON structure using a simple path notation.
// Supported paths: "field", "field.nested", "field[0]", "field[0].nested.field"
func extractJSONPath(data map[string]interface{}, path string) (string, error) {
	parts := parseJSONPath(path)
	var current interface{} = data

	for _, part := range parts {
		switch part.kind {
		case "field":
			if current == nil {
				return "", fmt.Errorf("null before '%s': %w", part.value, errPathAbsent)
			}
			obj, ok := current.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("expected object at '%s'", part.value)
			}
			var found bool
			current, found = obj[part.value]
			if !found {
				return "", fmt.Errorf("field '%s' not found: %w", part.value, errPathAbsent)
			}

		case "index":
			if current == nil {
				return "", fmt.Errorf("null before index %s: %w", part.value, errPathAbsent)
			}
			arr, ok := current.([]interface{})
			if !ok {
				return "", fmt.Errorf("expected array at index %s", part.value)
			}
			var idx int
			if _, err := fmt.Sscanf(part.value, "%d", &idx); err != nil {
				return "", fmt.Errorf("invalid index %q", part.value)
			}
			if idx < 0 || idx >= len(arr) {
				return "", fmt.Errorf("index %d out of bounds (len=%d): %w", idx, len(arr), errPathAbsent)
			}
			current = arr[idx]
		}
	}

	switch v := current.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("final value is not a string: %T", current)
	}
}

type pathPart struct {
	kind  string // "field" or "index"
	value string
}

// parseJSONPath converts "candidates[0].content.parts[0].text" into structured path parts.
func parseJSONPath(path string) []pathPart {
	var parts []pathPart
	current := ""

	for i := 0; i < len(path); i++ {
		ch := path[i]
		switch ch {
		case '.':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
		case '[':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, pathPart{kind: "index", value: path[i+1 : j]})
				i = j
			}
		default:
			current += string(ch)
		}
	}

	if current != "" {
		parts = append(parts, pathPart{kind: "field", value: current})
	}

	return parts
}
