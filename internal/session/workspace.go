package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/vibegen/internal/application/presets"
	"github.com/doeshing/vibegen/internal/domain"
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("a generation is already in progress")

// Submitter is the generation orchestrator as seen by the workspace.
type Submitter interface {
	Submit(ctx context.Context, req domain.PromptRequest, customKey string) (domain.GenerationResult, error)
}

// Workspace is the application state owned by the presentation layer. It is
// passed to the core by value, one request at a time.
type Workspace struct {
	Topic     string
	Vibestack string
	Duration  string
	ModelID   string

	Result       string
	Status       domain.SubmissionState
	ErrorMessage string
	// PromptForKey is set when the last failure should open key settings.
	PromptForKey bool

	History   []domain.HistoryItem
	Presets   []domain.PresetVibe
	CustomKey string
	DarkMode  bool

	Now   func() time.Time
	NewID func() string

	// mu guards every field once the workspace is shared: Generate, Reset,
	// Restore, ApplyPreset, FindHistory and CanGenerate take it.
	mu sync.Mutex
}

// NewWorkspace returns an idle workspace with the default duration and model.
func NewWorkspace() *Workspace {
	return &Workspace{
		Duration: domain.DefaultDuration,
		ModelID:  domain.DefaultModelID,
		Status:   domain.StateIdle,
		History:  []domain.HistoryItem{},
		Presets:  presets.Defaults(),
		DarkMode: true,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// Request snapshots the form fields. Callers that share the workspace across
// goroutines go through Generate, which takes the snapshot under w.mu.
func (w *Workspace) Request() domain.PromptRequest {
	return domain.PromptRequest{
		Topic:     w.Topic,
		Vibestack: w.Vibestack,
		Duration:  w.Duration,
		ModelID:   w.ModelID,
	}
}

// CanGenerate mirrors the enabled state of the generate action.
func (w *Workspace) CanGenerate() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Status != domain.StateSubmitting &&
		strings.TrimSpace(w.Topic) != "" && strings.TrimSpace(w.Vibestack) != ""
}

// Generate submits the current request. While a submission is in flight a
// second call returns ErrBusy. On success the result is prepended to History.
func (w *Workspace) Generate(ctx context.Context, svc Submitter) (domain.GenerationResult, error) {
	w.mu.Lock()
	if w.Status == domain.StateSubmitting {
		w.mu.Unlock()
		return domain.GenerationResult{}, ErrBusy
	}
	prev := w.Status
	req := w.Request()
	key := w.CustomKey
	w.Status = domain.StateSubmitting
	w.ErrorMessage = ""
	w.PromptForKey = false
	w.Result = ""
	w.mu.Unlock()

	result, err := svc.Submit(ctx, req, key)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.Status = prev
		return result, err
	}
	if result.Err != nil {
		w.Status = domain.StateFailed
		w.ErrorMessage = result.Err.Message
		w.PromptForKey = result.Err.Kind.NeedsCredential()
		return result, nil
	}

	w.Status = domain.StateSucceeded
	w.Result = result.Text
	item := domain.HistoryItem{
		ID:              w.NewID(),
		Topic:           req.Topic,
		Vibestack:       req.Vibestack,
		Duration:        req.Duration,
		ModelID:         req.ModelID,
		GeneratedPrompt: result.Text,
		Timestamp:       w.Now().UnixMilli(),
	}
	w.History = append([]domain.HistoryItem{item}, w.History...)
	return result, nil
}

// Reset returns a finished workspace to Idle so inputs can be edited again.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Status == domain.StateSubmitting {
		return
	}
	w.Status = domain.StateIdle
	w.ErrorMessage = ""
	w.PromptForKey = false
}

// Restore loads a history item back into the form. Items saved before
// duration or model selection existed get the defaults.
func (w *Workspace) Restore(item domain.HistoryItem, defaultModel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Topic = item.Topic
	w.Vibestack = item.Vibestack
	w.Duration = item.Duration
	if w.Duration == "" {
		w.Duration = domain.DefaultDuration
	}
	w.ModelID = item.ModelID
	if w.ModelID == "" {
		w.ModelID = defaultModel
	}
	if w.ModelID == "" {
		w.ModelID = domain.DefaultModelID
	}
	w.Result = item.GeneratedPrompt
}

// ApplyPreset merges a preset into the vibestack field.
func (w *Workspace) ApplyPreset(p domain.PresetVibe) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Vibestack = presets.Apply(w.Vibestack, p.Value)
}

// FindHistory looks an item up by id or unique id prefix.
func (w *Workspace) FindHistory(ref string) (domain.HistoryItem, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var match domain.HistoryItem
	count := 0
	for _, item := range w.History {
		if item.ID == ref {
			return item, true
		}
		if ref != "" && strings.HasPrefix(item.ID, ref) {
			match = item
			count++
		}
	}
	return match, count == 1
}
