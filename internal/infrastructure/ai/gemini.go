package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// geminiEndpoint calls generateContent through the GenAI SDK. A fresh client
// is built per call because the key travels with each request.
type geminiEndpoint struct {
	model      domain.ModelOption
	httpClient *http.Client
}

func newGeminiEndpoint(model domain.ModelOption, client *http.Client) ports.Endpoint {
	return &geminiEndpoint{model: model, httpClient: client}
}

func (g *geminiEndpoint) Name() string {
	return string(domain.ProviderGemini)
}

func (g *geminiEndpoint) Generate(ctx context.Context, req ports.GenerationRequest) (ports.GenerationResponse, error) {
	cfg := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.model.Endpoint != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.model.Endpoint}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return ports.GenerationResponse{}, fmt.Errorf("gemini client: %w", err)
	}

	temperature := float32(req.Temperature)
	resp, err := client.Models.GenerateContent(ctx, req.ModelID, genai.Text(req.Content), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return ports.GenerationResponse{}, geminiError(err)
	}
	if resp == nil {
		return ports.GenerationResponse{}, nil
	}
	return ports.GenerationResponse{Text: resp.Text()}, nil
}

// geminiError lifts the SDK's APIError into an EndpointError so the status
// code survives classification.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ports.EndpointError{StatusCode: apiErr.Code, Message: messageOr(apiErr.Message, err), Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &ports.EndpointError{StatusCode: apiErrPtr.Code, Message: messageOr(apiErrPtr.Message, err), Err: err}
	}
	return &ports.EndpointError{Message: err.Error(), Err: err}
}

func messageOr(msg string, err error) string {
	if msg == "" {
		return err.Error()
	}
	return msg
}
