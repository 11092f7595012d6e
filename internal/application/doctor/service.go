package doctor

import (
	"context"
	"fmt"
	"strings"

	configvalidator "github.com/doeshing/vibegen/internal/application/config"
	"github.com/doeshing/vibegen/internal/application/compiler"
	"github.com/doeshing/vibegen/internal/application/credential"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	StateStore      ports.StateStore
	EndpointFactory ports.EndpointFactory
	Compiler        *compiler.Compiler
}

// Run executes checks and returns a report. The returned error is non-nil
// only when the config cannot be loaded at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configvalidator.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format v%s, %d models", cfg.ConfigFormatVersion, len(cfg.Models))))
	}

	checks = append(checks, s.templateCheck())
	checks = append(checks, s.storageCheck(ctx))
	checks = append(checks, s.credentialCheck(ctx, cfg))
	checks = append(checks, s.endpointCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) templateCheck() domain.HealthCheck {
	c := s.Compiler
	if c == nil {
		c = compiler.Default()
	}
	var missing []string
	for _, p := range compiler.Placeholders() {
		if !strings.Contains(c.Template(), p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fail("Master template", "missing placeholders: "+strings.Join(missing, ", "))
	}
	return ok("Master template", fmt.Sprintf("%d bytes, all placeholders present", len(c.Template())))
}

func (s *Service) storageCheck(ctx context.Context) domain.HealthCheck {
	if s.StateStore == nil {
		return warn("State store", "not initialized")
	}
	if _, _, err := s.StateStore.Get(ctx, domain.KeyHistory); err != nil {
		return fail("State store", err.Error())
	}
	return ok("State store", s.StateStore.Location())
}

func (s *Service) credentialCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	var custom string
	if s.StateStore != nil {
		if v, _, err := s.StateStore.Get(ctx, domain.KeyAPIKey); err == nil {
			custom = v
		}
	}
	env := credential.NewEnvSource(cfg.GetCredentialEnvVars()...)
	key, origin, found := credential.Resolve(custom, env)
	if !found {
		return warn("API key", fmt.Sprintf("none saved and %s unset", strings.Join(cfg.GetCredentialEnvVars(), ", ")))
	}
	detail := fmt.Sprintf("%s (%s)", credential.Mask(key), origin)
	if origin == credential.OriginAmbient {
		detail = fmt.Sprintf("%s (from %s)", credential.Mask(key), env.Var())
	}
	return ok("API key", detail)
}

func (s *Service) endpointCheck(cfg domain.Config) domain.HealthCheck {
	if s.EndpointFactory == nil {
		return warn("Endpoint", "factory not initialized")
	}
	id := cfg.ResolveModelID("")
	endpoint, err := s.EndpointFactory.ForModel(id)
	if err != nil {
		return fail("Endpoint", err.Error())
	}
	return ok("Endpoint", fmt.Sprintf("%s via %s", id, endpoint.Name()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
