package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/vibegen/internal/application/compiler"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}
func (m mapStore) Set(_ context.Context, key, value string) error { m[key] = value; return nil }
func (m mapStore) Delete(_ context.Context, key string) error     { delete(m, key); return nil }
func (m mapStore) Location() string                               { return "memory" }
func (m mapStore) Close() error                                   { return nil }

type namedEndpoint string

func (n namedEndpoint) Name() string { return string(n) }
func (n namedEndpoint) Generate(context.Context, ports.GenerationRequest) (ports.GenerationResponse, error) {
	return ports.GenerationResponse{}, nil
}

type factoryFunc func(string) (ports.Endpoint, error)

func (f factoryFunc) ForModel(id string) (ports.Endpoint, error) { return f(id) }

func healthyConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultModel: "gemini-flash-lite-latest", DefaultDuration: "8s"},
		Credentials:         domain.CredentialSettings{EnvVars: []string{"VIBEGEN_TEST_KEY"}},
		Models:              []domain.ModelOption{{ID: "gemini-flash-lite-latest"}},
	}
}

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := map[string]domain.HealthStatus{}
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestRunHealthy(t *testing.T) {
	t.Setenv("VIBEGEN_TEST_KEY", "")
	svc := &Service{
		ConfigProvider: staticConfig{cfg: healthyConfig()},
		StateStore:     mapStore{domain.KeyAPIKey: "sk-custom-1234"},
		EndpointFactory: factoryFunc(func(id string) (ports.Endpoint, error) {
			return namedEndpoint("gemini"), nil
		}),
		Compiler: compiler.Default(),
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for name, status := range statuses(report) {
		if status != domain.HealthOK {
			t.Errorf("check %s = %s, want ok", name, status)
		}
	}
	if len(report.Checks) != 5 {
		t.Errorf("expected 5 checks, got %d", len(report.Checks))
	}
}

func TestRunReportsProblems(t *testing.T) {
	t.Setenv("VIBEGEN_TEST_KEY", "")
	cfg := healthyConfig()
	cfg.Preferences.DefaultDuration = "99s"
	svc := &Service{
		ConfigProvider: staticConfig{cfg: cfg},
		StateStore:     mapStore{},
		EndpointFactory: factoryFunc(func(id string) (ports.Endpoint, error) {
			return nil, errors.New("no route")
		}),
		Compiler: compiler.New("no placeholders here"),
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := statuses(report)
	want := map[string]domain.HealthStatus{
		"Config file":     domain.HealthError,
		"Master template": domain.HealthError,
		"State store":     domain.HealthOK,
		"API key":         domain.HealthWarn,
		"Endpoint":        domain.HealthError,
	}
	for name, status := range want {
		if got[name] != status {
			t.Errorf("check %s = %s, want %s", name, got[name], status)
		}
	}
}

func TestRunConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: staticConfig{err: errors.New("disk on fire")}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("unexpected report: %+v", report)
	}
}
