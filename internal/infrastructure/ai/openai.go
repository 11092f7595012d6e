package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// openAIEndpoint implements chat completions with the official SDK.
type openAIEndpoint struct {
	model      domain.ModelOption
	httpClient *http.Client
}

func newOpenAIEndpoint(model domain.ModelOption, client *http.Client) ports.Endpoint {
	return &openAIEndpoint{model: model, httpClient: client}
}

func (o *openAIEndpoint) Name() string {
	return string(domain.ProviderOpenAI)
}

func (o *openAIEndpoint) Generate(ctx context.Context, req ports.GenerationRequest) (ports.GenerationResponse, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithHTTPClient(o.httpClient),
		option.WithMaxRetries(0),
	}
	if o.model.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(o.model.Endpoint))
	}
	for key, value := range o.model.APIFormat.ExtraHeaders {
		opts = append(opts, option.WithHeader(key, value))
	}
	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.ModelID),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Content)},
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = err.Error()
			}
			return ports.GenerationResponse{}, &ports.EndpointError{StatusCode: apiErr.StatusCode, Message: msg, Err: err}
		}
		return ports.GenerationResponse{}, &ports.EndpointError{Message: err.Error(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return ports.GenerationResponse{}, nil
	}
	return ports.GenerationResponse{Text: resp.Choices[0].Message.Content}, nil
}
