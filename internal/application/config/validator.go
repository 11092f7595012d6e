package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/vibegen/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := validateModels(cfg.Models); err != nil {
		return err
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0, got %d", cfg.Preferences.TimeoutSeconds)
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateCredentials(cfg.Credentials); err != nil {
		return err
	}
	return nil
}

func validateModels(models []domain.ModelOption) error {
	for i, model := range models {
		if strings.TrimSpace(model.ID) == "" {
			return fmt.Errorf("models[%d].id must be set", i)
		}
		if !isKnownProvider(model.EffectiveProvider()) {
			return fmt.Errorf("model %s: provider must be one of %v, got %s", model.ID, domain.KnownProviders, model.Provider)
		}
		if model.EffectiveProvider() == domain.ProviderHTTP && strings.TrimSpace(model.Endpoint) == "" {
			return fmt.Errorf("model %s: http provider requires endpoint", model.ID)
		}
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch strings.ToLower(storage.Backend) {
	case "", domain.StorageBackendSQLite, domain.StorageBackendFile:
	default:
		return fmt.Errorf("storage.backend must be %s|%s, got %s", domain.StorageBackendSQLite, domain.StorageBackendFile, storage.Backend)
	}
	return nil
}

func validateCredentials(creds domain.CredentialSettings) error {
	for i, name := range creds.EnvVars {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("credentials.env_vars[%d] is empty", i)
		}
	}
	return nil
}

func isKnownProvider(kind domain.ProviderKind) bool {
	for _, known := range domain.KnownProviders {
		if kind == known {
			return true
		}
	}
	return false
}
