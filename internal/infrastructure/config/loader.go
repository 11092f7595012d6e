package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/vibegen/assets"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/pkg/filesystem"
	"github.com/doeshing/vibegen/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "VIBEGEN_CONFIG"

// FileLoader loads YAML configuration from ~/.vibegen/config.yaml (overridable via VIBEGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("create config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Save implements ports.ConfigSaver.
func (l *FileLoader) Save(_ context.Context, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := filesystem.WriteFileAtomic(l.Path(), raw, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Defaults parses the embedded default configuration.
func Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].ID
	}
	if cfg.Preferences.DefaultDuration == "" {
		cfg.Preferences.DefaultDuration = domain.DefaultDuration
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = domain.StorageBackendSQLite
	}
	if cfg.Storage.Path == "" {
		if cfg.Storage.Backend == domain.StorageBackendFile {
			cfg.Storage.Path = filepath.Join(filesystem.AppDir(), "state")
		} else {
			cfg.Storage.Path = filepath.Join(filesystem.AppDir(), "state.db")
		}
	}
	cfg.Storage.Path = filesystem.ExpandPath(cfg.Storage.Path)
	if len(cfg.Credentials.EnvVars) == 0 {
		cfg.Credentials.EnvVars = cfg.GetCredentialEnvVars()
	}
	return cfg
}

var (
	_ ports.ConfigProvider = (*FileLoader)(nil)
	_ ports.ConfigSaver    = (*FileLoader)(nil)
)
