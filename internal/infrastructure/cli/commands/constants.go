package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrRepositoryUnavailable    = "state store unavailable"
	ErrGenerateUnavailable      = "generate service unavailable"
	ErrHistoryNotFound          = "no history item matches %q"
	ErrPresetNotFound           = "no preset matches %q"
	ErrClipboardUnavailable     = "clipboard unavailable on this platform"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoHistoryRecorded  = "No history recorded yet."
	MsgNoPresets          = "No presets saved."
	MsgNoMatches          = "No matches."
	MsgCopied             = "Copied to clipboard."
	MsgCancelled          = "Cancelled."
	MsgKeyCleared         = "Custom API key cleared."
	MsgHistoryCleared     = "History cleared."
	MsgPresetsReset       = "Presets restored to defaults."
)

// Defaults for list output.
const (
	DefaultMarkdownWidth = 80
)
