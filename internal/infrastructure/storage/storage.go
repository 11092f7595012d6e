// Package storage persists client state (theme, history, presets, API key)
// as independently keyed string values.
package storage

import (
	"fmt"
	"strings"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// Open builds the state store selected by the storage settings.
func Open(settings domain.StorageSettings) (ports.StateStore, error) {
	switch strings.ToLower(settings.Backend) {
	case "", domain.StorageBackendSQLite:
		return NewSQLiteStore(settings.Path)
	case domain.StorageBackendFile:
		return NewFileStore(settings.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
}
