// Package presets manages reusable vibestack fragments. Every operation takes
// the current list by value and returns the new list; persisting it is the
// caller's job.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/doeshing/vibegen/assets"
	"github.com/doeshing/vibegen/internal/domain"
)

var (
	ErrNameRequired   = errors.New("please enter a name for your preset")
	ErrEmptyVibestack = errors.New("the vibestack input is empty; enter some text to save as a preset")
	ErrNotFound       = errors.New("preset not found")
	ErrInvalidFormat  = errors.New("invalid JSON format: expected an array of vibe objects with id, name and value")
)

// Defaults returns a fresh copy of the built-in presets.
func Defaults() []domain.PresetVibe {
	var out []domain.PresetVibe
	if err := json.Unmarshal(assets.DefaultPresetsJSON, &out); err != nil {
		panic(fmt.Sprintf("embedded presets are corrupt: %v", err))
	}
	return out
}

// New builds a preset from the current vibestack. The id is a fresh UUID.
func New(name, description, vibestack string) (domain.PresetVibe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.PresetVibe{}, ErrNameRequired
	}
	value := strings.TrimSpace(vibestack)
	if value == "" {
		return domain.PresetVibe{}, ErrEmptyVibestack
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = domain.DefaultPresetDescription
	}
	return domain.PresetVibe{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Value:       value,
	}, nil
}

// Add appends a preset.
func Add(list []domain.PresetVibe, p domain.PresetVibe) []domain.PresetVibe {
	out := make([]domain.PresetVibe, 0, len(list)+1)
	out = append(out, list...)
	return append(out, p)
}

// Delete removes the preset with id. Missing ids report ErrNotFound.
func Delete(list []domain.PresetVibe, id string) ([]domain.PresetVibe, error) {
	out := make([]domain.PresetVibe, 0, len(list))
	found := false
	for _, p := range list {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return list, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return out, nil
}

// Find looks a preset up by id, falling back to a case-insensitive name match.
func Find(list []domain.PresetVibe, ref string) (domain.PresetVibe, bool) {
	for _, p := range list {
		if p.ID == ref {
			return p, true
		}
	}
	for _, p := range list {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return domain.PresetVibe{}, false
}

// Search ranks presets by fuzzy match over name, description and id.
// An empty query returns the list unchanged.
func Search(list []domain.PresetVibe, query string) []domain.PresetVibe {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}
	searchStrings := make([]string, 0, len(list))
	for _, p := range list {
		searchStrings = append(searchStrings, fmt.Sprintf("%s %s %s", p.Name, p.Description, p.ID))
	}
	matches := fuzzy.Find(query, searchStrings)
	out := make([]domain.PresetVibe, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}

// Apply merges a preset value into the current vibestack: a blank vibestack
// is replaced, anything else gets the value appended after a blank line.
func Apply(vibestack, value string) string {
	if strings.TrimSpace(vibestack) == "" {
		return value
	}
	return vibestack + "\n\n" + value
}

// Export renders the list as two-space indented JSON.
func Export(list []domain.PresetVibe) ([]byte, error) {
	if list == nil {
		list = []domain.PresetVibe{}
	}
	return json.MarshalIndent(list, "", "  ")
}

// Parse decodes an import file. Every element must carry a non-empty id, name
// and value or the whole file is rejected.
func Parse(data []byte) ([]domain.PresetVibe, error) {
	var raw []domain.PresetVibe
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON file: %w", err)
	}
	for i, p := range raw {
		if p.ID == "" || p.Name == "" || p.Value == "" {
			return nil, fmt.Errorf("%w (element %d)", ErrInvalidFormat, i)
		}
	}
	return raw, nil
}

// Merge appends incoming presets whose id is not already present and reports
// how many were added.
func Merge(list, incoming []domain.PresetVibe) ([]domain.PresetVibe, int) {
	existing := make(map[string]bool, len(list))
	for _, p := range list {
		existing[p.ID] = true
	}
	out := make([]domain.PresetVibe, 0, len(list)+len(incoming))
	out = append(out, list...)
	added := 0
	for _, p := range incoming {
		if existing[p.ID] {
			continue
		}
		existing[p.ID] = true
		out = append(out, p)
		added++
	}
	return out, added
}

// Import parses data and merges it into list.
func Import(list []domain.PresetVibe, data []byte) ([]domain.PresetVibe, int, error) {
	incoming, err := Parse(data)
	if err != nil {
		return list, 0, err
	}
	merged, added := Merge(list, incoming)
	return merged, added, nil
}
