package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model option from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelOption, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelOption{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.ID == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelOption{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// FindModel searches the catalog for a model id
func (c *Config) FindModel(id string) (ModelOption, bool) {
	for _, model := range c.Models {
		if model.ID == id {
			return model, true
		}
	}
	return ModelOption{}, false
}

// HasModel checks if a model with the given id exists in the catalog
func (c *Config) HasModel(id string) bool {
	_, exists := c.FindModel(id)
	return exists
}

// ResolveModelID returns the override when set, otherwise the default model id.
func (c *Config) ResolveModelID(override string) string {
	if override != "" {
		return override
	}
	if c.Preferences.DefaultModel != "" {
		return c.Preferences.DefaultModel
	}
	if len(c.Models) > 0 {
		return c.Models[0].ID
	}
	return DefaultModelID
}

// SetDefaultModel changes the default model to the specified id
// Returns an error if the model doesn't exist
func (c *Config) SetDefaultModel(id string) error {
	if !c.HasModel(id) {
		return fmt.Errorf("cannot set default model: model %s does not exist", id)
	}

	c.Preferences.DefaultModel = id
	return nil
}

// GetDefaultDuration returns the configured duration label or the built-in default
func (c *Config) GetDefaultDuration() string {
	if c.Preferences.DefaultDuration == "" {
		return DefaultDuration
	}
	return c.Preferences.DefaultDuration
}

// SetDefaultDuration changes the default duration label
func (c *Config) SetDefaultDuration(d string) error {
	if !IsValidDuration(d) {
		return fmt.Errorf("duration %s is not one of %v", d, DurationOptions)
	}
	c.Preferences.DefaultDuration = d
	return nil
}

// GetTimeout returns the request timeout; zero means the call runs to completion
func (c *Config) GetTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// GetStorageBackend returns the configured backend, sqlite when unset
func (c *Config) GetStorageBackend() string {
	if c.Storage.Backend == "" {
		return StorageBackendSQLite
	}
	return c.Storage.Backend
}

// GetCredentialEnvVars returns the ambient key variables in lookup order
func (c *Config) GetCredentialEnvVars() []string {
	if len(c.Credentials.EnvVars) == 0 {
		return []string{"API_KEY", "GEMINI_API_KEY"}
	}
	return c.Credentials.EnvVars
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}

	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}

	if c.Preferences.DefaultDuration != "" && !IsValidDuration(c.Preferences.DefaultDuration) {
		return fmt.Errorf("default duration %s is not one of %v", c.Preferences.DefaultDuration, DurationOptions)
	}

	seen := make(map[string]bool, len(c.Models))
	for _, model := range c.Models {
		if seen[model.ID] {
			return fmt.Errorf("model %s is declared more than once", model.ID)
		}
		seen[model.ID] = true
	}

	return nil
}
