package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/vibegen/internal/application/compiler"
	"github.com/doeshing/vibegen/internal/application/credential"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

const (
	msgMissingCredential = "API Key is missing. Save one with `vibegen key set` or export API_KEY."
	msgEmptyGeneration   = "No text generated from the model."
)

// Observer receives every state transition of a submission.
type Observer func(domain.SubmissionState)

// Service orchestrates one generation request end-to-end. It holds no
// per-submission state, so concurrent Submit calls are independent.
type Service struct {
	Compiler        *compiler.Compiler
	EndpointFactory ports.EndpointFactory
	Ambient         credential.Source
	Logger          ports.Logger
	Observer        Observer
}

// Submit validates the request, resolves the credential, compiles the prompt
// and issues exactly one endpoint call. The returned error is non-nil only for
// a *ValidationError or an unwired Service; endpoint-side failures are
// typed GenerationResults.
func (s *Service) Submit(ctx context.Context, req domain.PromptRequest, customKey string) (domain.GenerationResult, error) {
	if err := Validate(req); err != nil {
		return domain.GenerationResult{}, err
	}
	if s.EndpointFactory == nil {
		return domain.GenerationResult{}, errors.New("generate.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.transition(domain.StateSubmitting)
	result := s.run(ctx, req, customKey)
	s.transition(result.State())

	if result.Err != nil {
		s.logger().Warn("generation failed", map[string]interface{}{
			"model": req.ModelID,
			"kind":  string(result.Err.Kind),
		})
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, req domain.PromptRequest, customKey string) domain.GenerationResult {
	apiKey, origin, ok := credential.Resolve(customKey, s.Ambient)
	if !ok {
		return domain.Failure(domain.FailureMissingCredential, msgMissingCredential, nil)
	}

	content := s.compiler().Compile(req.Topic, req.Vibestack, req.Duration)

	endpoint, err := s.EndpointFactory.ForModel(req.ModelID)
	if err != nil {
		return domain.Failure(domain.FailureEndpoint, fmt.Sprintf("endpoint init: %v", err), err)
	}

	s.logger().Info("calling endpoint", map[string]interface{}{
		"endpoint":   endpoint.Name(),
		"model":      req.ModelID,
		"key_origin": string(origin),
		"chars":      len(content),
	})

	resp, err := endpoint.Generate(ctx, ports.GenerationRequest{
		ModelID:     req.ModelID,
		Content:     content,
		Temperature: domain.GenerationTemperature,
		APIKey:      apiKey,
	})
	if err != nil {
		return Classify(err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return domain.Failure(domain.FailureEmptyGeneration, msgEmptyGeneration, nil)
	}
	return domain.Success(text)
}

func (s *Service) transition(state domain.SubmissionState) {
	if s.Observer != nil {
		s.Observer(state)
	}
}

func (s *Service) compiler() *compiler.Compiler {
	if s.Compiler == nil {
		return compiler.Default()
	}
	return s.Compiler
}

func (s *Service) logger() ports.Logger {
	if s.Logger == nil {
		return nopLogger{}
	}
	return s.Logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}
