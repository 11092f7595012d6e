// Package compiler fills the master prompt template with the caller's inputs.
package compiler

import (
	"strings"

	"github.com/doeshing/vibegen/assets"
)

// Template placeholders.
const (
	PlaceholderTopic     = "{{TOPIC}}"
	PlaceholderVibestack = "{{VIBESTACK}}"
	PlaceholderDuration  = "{{DURATION}}"
)

// Compiler substitutes topic, vibestack and duration into a template.
// The zero value is not usable; construct with New or Default.
type Compiler struct {
	template string
}

var defaultCompiler = New(assets.MasterPromptTemplate)

// New builds a compiler over an arbitrary template.
func New(template string) *Compiler {
	return &Compiler{template: template}
}

// Default returns the compiler carrying the embedded master template.
func Default() *Compiler {
	return defaultCompiler
}

// Compile replaces every placeholder in a single left-to-right pass. Values
// are inserted verbatim: placeholder text inside a value is never expanded.
func (c *Compiler) Compile(topic, vibestack, duration string) string {
	r := strings.NewReplacer(
		PlaceholderDuration, duration,
		PlaceholderTopic, topic,
		PlaceholderVibestack, vibestack,
	)
	return r.Replace(c.template)
}

// Template returns the raw template text.
func (c *Compiler) Template() string {
	return c.template
}

// Placeholders lists the tokens the compiler fills.
func Placeholders() []string {
	return []string{PlaceholderDuration, PlaceholderTopic, PlaceholderVibestack}
}

// Compile fills the master template.
func Compile(topic, vibestack, duration string) string {
	return defaultCompiler.Compile(topic, vibestack, duration)
}
