// Package credential decides which API key authorizes a generation call.
package credential

import (
	"os"
	"strings"
)

// Origin records where a resolved key came from.
type Origin string

const (
	OriginNone    Origin = "none"
	OriginCustom  Origin = "custom"
	OriginAmbient Origin = "environment"
)

// Source yields the pre-provisioned key, or "" when none is set.
type Source interface {
	Key() string
}

// EnvSource reads the first non-blank value among the listed environment variables.
type EnvSource struct {
	Vars []string
}

// NewEnvSource builds a source over the given variables, in lookup order.
func NewEnvSource(vars ...string) EnvSource {
	return EnvSource{Vars: vars}
}

// Key implements Source.
func (s EnvSource) Key() string {
	for _, name := range s.Vars {
		if name == "" {
			continue
		}
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}
	return ""
}

// Var returns the name of the variable that currently supplies the key.
func (s EnvSource) Var() string {
	for _, name := range s.Vars {
		if name != "" && strings.TrimSpace(os.Getenv(name)) != "" {
			return name
		}
	}
	return ""
}

// StaticSource is a fixed ambient key, mainly for tests and embedding.
type StaticSource string

// Key implements Source.
func (s StaticSource) Key() string {
	return strings.TrimSpace(string(s))
}

// Resolve applies the precedence rule: a non-blank custom key wins, then the
// ambient source. ok is false when neither yields a key.
func Resolve(customKey string, ambient Source) (key string, origin Origin, ok bool) {
	if custom := strings.TrimSpace(customKey); custom != "" {
		return custom, OriginCustom, true
	}
	if ambient != nil {
		if key := ambient.Key(); key != "" {
			return key, OriginAmbient, true
		}
	}
	return "", OriginNone, false
}

// Mask hides all but the last four characters of a key.
func Mask(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
