// Package domain defines core business entities and value objects for VibeGen.
//
// This file contains the generation model catalog. The presentation layer only
// shows the descriptive fields; the orchestrator only needs the ID, and the
// endpoint factory uses the routing fields to pick a transport.
package domain

// ModelOption describes a selectable generation model declared in the config file.
type ModelOption struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Pricing     string `yaml:"pricing" json:"pricing"`
	IsNew       bool   `yaml:"is_new,omitempty" json:"isNew,omitempty"`

	// Provider selects the endpoint implementation. Empty means gemini.
	Provider   ProviderKind `yaml:"provider,omitempty" json:"-"`
	Endpoint   string       `yaml:"endpoint,omitempty" json:"-"`
	AuthEnvVar string       `yaml:"auth_env_var,omitempty" json:"-"`
	APIFormat  APIFormat    `yaml:"api_format,omitempty" json:"-"`
}

// ProviderKind names a generation endpoint implementation.
type ProviderKind string

const (
	ProviderGemini ProviderKind = "gemini"
	ProviderOpenAI ProviderKind = "openai"
	ProviderHTTP   ProviderKind = "http"
)

// KnownProviders lists every provider the endpoint factory can build.
var KnownProviders = []ProviderKind{ProviderGemini, ProviderOpenAI, ProviderHTTP}

// EffectiveProvider returns the provider with the gemini default applied.
func (m ModelOption) EffectiveProvider() ProviderKind {
	if m.Provider == "" {
		return ProviderGemini
	}
	return m.Provider
}

// APIFormat defines how to construct requests and parse responses for
// generic HTTP endpoints. All fields are optional with OpenAI-compatible
// defaults.
type APIFormat struct {
	// AuthHeaderName specifies the HTTP header name for authentication.
	// Default: "Authorization"
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix is prepended to the API key value.
	// Default: "Bearer " (with trailing space)
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// ResponseJSONPath specifies where to extract the generated text from the response.
	// Default: "choices[0].message.content"
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	// ExtraHeaders contains additional HTTP headers to send with each request.
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

const (
	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "
	DefaultResponsePath     = "choices[0].message.content"
)

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix with default fallback.
// A customized header name with an empty prefix means no prefix at all.
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName != "" && f.AuthHeaderPrefix == "" {
		return ""
	}
	if f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// GetResponseJSONPath returns the JSON path for extracting response content with default fallback.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath == "" {
		return DefaultResponsePath
	}
	return f.ResponseJSONPath
}
