package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// MasterPromptTemplate is the fixed instruction template filled by the compiler.
//
//go:embed defaults/master_prompt.txt
var MasterPromptTemplate string

// DefaultPresetsJSON contains the built-in vibestack presets.
//
//go:embed defaults/presets.json
var DefaultPresetsJSON []byte

// GuideMarkdown is rendered by `vibegen guide`.
//
//go:embed defaults/guide.md
var GuideMarkdown string
