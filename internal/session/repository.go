// Package session holds the presentation layer's state: the form fields, the
// loading state, the history log, the preset list, the stored key and the
// theme flag. The generation core never reads or writes any of it.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/doeshing/vibegen/internal/application/presets"
	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/ports"
)

// Repository reads and writes the four persisted values. A value that is
// missing or cannot be decoded falls back to its default.
type Repository struct {
	Store  ports.StateStore
	Logger ports.Logger
}

// NewRepository wraps a state store.
func NewRepository(store ports.StateStore, log ports.Logger) *Repository {
	return &Repository{Store: store, Logger: log}
}

// DarkMode returns the theme flag; dark is the default.
func (r *Repository) DarkMode(ctx context.Context) (bool, error) {
	raw, found, err := r.Store.Get(ctx, domain.KeyTheme)
	if err != nil {
		return true, fmt.Errorf("load theme: %w", err)
	}
	if !found {
		return true, nil
	}
	dark, err := strconv.ParseBool(raw)
	if err != nil {
		r.warn("theme value unreadable, using default", err)
		return true, nil
	}
	return dark, nil
}

// SaveDarkMode persists the theme flag.
func (r *Repository) SaveDarkMode(ctx context.Context, dark bool) error {
	if err := r.Store.Set(ctx, domain.KeyTheme, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// History returns the history list, newest first.
func (r *Repository) History(ctx context.Context) ([]domain.HistoryItem, error) {
	var items []domain.HistoryItem
	ok, err := r.loadJSON(ctx, domain.KeyHistory, &items)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok {
		return []domain.HistoryItem{}, nil
	}
	return items, nil
}

// SaveHistory persists the history list.
func (r *Repository) SaveHistory(ctx context.Context, items []domain.HistoryItem) error {
	if items == nil {
		items = []domain.HistoryItem{}
	}
	if err := r.saveJSON(ctx, domain.KeyHistory, items); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Presets returns the stored preset list or the built-in defaults.
func (r *Repository) Presets(ctx context.Context) ([]domain.PresetVibe, error) {
	var list []domain.PresetVibe
	ok, err := r.loadJSON(ctx, domain.KeyPresets, &list)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	if !ok {
		return presets.Defaults(), nil
	}
	return list, nil
}

// SavePresets persists the preset list.
func (r *Repository) SavePresets(ctx context.Context, list []domain.PresetVibe) error {
	if list == nil {
		list = []domain.PresetVibe{}
	}
	if err := r.saveJSON(ctx, domain.KeyPresets, list); err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	return nil
}

// APIKey returns the stored custom key, "" when none.
func (r *Repository) APIKey(ctx context.Context) (string, error) {
	raw, _, err := r.Store.Get(ctx, domain.KeyAPIKey)
	if err != nil {
		return "", fmt.Errorf("load api key: %w", err)
	}
	return raw, nil
}

// SaveAPIKey stores the custom key; an empty key clears it.
func (r *Repository) SaveAPIKey(ctx context.Context, key string) error {
	if err := r.Store.Set(ctx, domain.KeyAPIKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

// Load assembles a Workspace from the persisted values.
func (r *Repository) Load(ctx context.Context) (*Workspace, error) {
	dark, err := r.DarkMode(ctx)
	if err != nil {
		return nil, err
	}
	history, err := r.History(ctx)
	if err != nil {
		return nil, err
	}
	list, err := r.Presets(ctx)
	if err != nil {
		return nil, err
	}
	key, err := r.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	ws := NewWorkspace()
	ws.DarkMode = dark
	ws.History = history
	ws.Presets = list
	ws.CustomKey = key
	return ws, nil
}

func (r *Repository) loadJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, found, err := r.Store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		r.warn("stored value unreadable, using default", err, key)
		return false, nil
	}
	return true, nil
}

func (r *Repository) saveJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, key, string(data))
}

func (r *Repository) warn(msg string, err error, key ...string) {
	if r.Logger == nil {
		return
	}
	fields := map[string]interface{}{"error": err.Error()}
	if len(key) > 0 {
		fields["key"] = key[0]
	}
	r.Logger.Warn(msg, fields)
}
