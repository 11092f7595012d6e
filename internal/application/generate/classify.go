package generate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// Classify maps an endpoint failure to a typed result. A structured status
// code is trusted first: 401 and 403 are credential failures, while 429 and
// 5xx are endpoint failures whatever the message says. Otherwise the message
// is searched for "API Key" (any case) or "403". Gemini reports a bad key as
// 400 with "API key not valid", so 4xx statuses still go through the text match.
func Classify(err error) domain.GenerationResult {
	if err == nil {
		return domain.Failure(domain.FailureEndpoint, "unknown endpoint failure", nil)
	}
	msg := err.Error()

	var endpointErr *ports.EndpointError
	if errors.As(err, &endpointErr) {
		switch code := endpointErr.StatusCode; {
		case code == http.StatusUnauthorized, code == http.StatusForbidden:
			return domain.Failure(domain.FailureInvalidCredential, msg, err)
		case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
			return domain.Failure(domain.FailureEndpoint, msg, err)
		}
	}

	if looksLikeCredentialProblem(msg) {
		return domain.Failure(domain.FailureInvalidCredential, msg, err)
	}
	return domain.Failure(domain.FailureEndpoint, msg, err)
}

func looksLikeCredentialProblem(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "api key") || strings.Contains(msg, "403")
}
