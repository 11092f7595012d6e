package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/doeshing/vibegen/internal/application/compiler"
	"github.com/doeshing/vibegen/internal/application/credential"
	"github.com/doeshing/vibegen/internal/application/doctor"
	"github.com/doeshing/vibegen/internal/application/generate"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/infrastructure/ai"
	"github.com/doeshing/vibegen/internal/infrastructure/config"
	"github.com/doeshing/vibegen/internal/infrastructure/storage"
	"github.com/doeshing/vibegen/internal/pkg/logger"
	"github.com/doeshing/vibegen/internal/ports"
	"github.com/doeshing/vibegen/internal/session"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	Logger          ports.Logger
	StateStore      ports.StateStore
	Repository      *session.Repository
	Compiler        *compiler.Compiler
	EndpointFactory ports.EndpointFactory
	GenerateService *generate.Service
	DoctorService   *doctor.Service
	Clipboard       ports.Clipboard
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.GetTimeout()}
	factory := ai.NewFactory(cfg.Models, httpClient)
	comp := compiler.Default()

	generateService := &generate.Service{
		Compiler:        comp,
		EndpointFactory: factory,
		Ambient:         credential.NewEnvSource(cfg.GetCredentialEnvVars()...),
		Logger:          log,
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		StateStore:      store,
		EndpointFactory: factory,
		Compiler:        comp,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"storage": store.Location(),
		"models":  len(cfg.Models),
	})

	return &Container{
		Config:          cfg,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		Logger:          log,
		StateStore:      store,
		Repository:      session.NewRepository(store, log),
		Compiler:        comp,
		EndpointFactory: factory,
		GenerateService: generateService,
		DoctorService:   doctorService,
	}, nil
}

// Close releases the state store.
func (c *Container) Close() error {
	if c.StateStore == nil {
		return nil
	}
	return c.StateStore.Close()
}
