package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Generation constants
const (
	// GenerationTemperature is held constant for consistent but non-repetitive phrasing.
	GenerationTemperature = 0.7
	// DefaultModelID is the catalog entry selected when nothing else is configured.
	DefaultModelID = "gemini-flash-lite-latest"
	// DefaultPresetDescription is used when a saved preset has no description.
	DefaultPresetDescription = "Custom user preset"
)

// State store keys. Each is written independently.
const (
	KeyTheme   = "vibegen_theme"
	KeyHistory = "vibegen_history"
	KeyPresets = "vibegen_vibes"
	KeyAPIKey  = "vibegen_api_key"
)

// Storage backends
const (
	StorageBackendSQLite = "sqlite"
	StorageBackendFile   = "file"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// PresetExportFileName is the default export file name.
const PresetExportFileName = "vibegen_presets.json"

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
