package domain

// Config mirrors ~/.vibegen/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Preferences         Preferences        `yaml:"preferences"`
	Credentials         CredentialSettings `yaml:"credentials"`
	Storage             StorageSettings    `yaml:"storage"`
	Models              []ModelOption      `yaml:"models"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel    string `yaml:"default_model"`
	DefaultDuration string `yaml:"default_duration"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`
	TimeoutSeconds  int    `yaml:"timeout"`
}

// CredentialSettings lists the environment variables consulted for the
// pre-provisioned API key, in order.
type CredentialSettings struct {
	EnvVars []string `yaml:"env_vars"`
}

// StorageSettings selects where client state is persisted.
type StorageSettings struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}
