package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/vibegen/internal/domain"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Location() string { return "memory" }
func (m *memStore) Close() error     { return nil }

type stubSubmitter struct {
	result  domain.GenerationResult
	err     error
	gotReq  domain.PromptRequest
	gotKey  string
	release chan struct{}
}

func (s *stubSubmitter) Submit(_ context.Context, req domain.PromptRequest, key string) (domain.GenerationResult, error) {
	s.gotReq = req
	s.gotKey = key
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

func fixedWorkspace() *Workspace {
	ws := NewWorkspace()
	ws.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	ws.NewID = func() string { return "id-1" }
	return ws
}

func TestRepositoryDefaults(t *testing.T) {
	repo := NewRepository(newMemStore(), nil)
	ws, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ws.DarkMode {
		t.Error("dark mode should default to true")
	}
	if len(ws.History) != 0 {
		t.Errorf("expected empty history, got %d", len(ws.History))
	}
	if len(ws.Presets) != 8 {
		t.Errorf("expected built-in presets, got %d", len(ws.Presets))
	}
	if ws.CustomKey != "" || ws.Duration != domain.DefaultDuration {
		t.Errorf("unexpected workspace defaults: %+v", ws.Request())
	}
}

func TestRepositoryCorruptValuesFallBack(t *testing.T) {
	store := newMemStore()
	store.data[domain.KeyHistory] = "{not json"
	store.data[domain.KeyPresets] = "[[["
	store.data[domain.KeyTheme] = "purple"
	repo := NewRepository(store, nil)

	ws, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ws.History) != 0 || len(ws.Presets) != 8 || !ws.DarkMode {
		t.Fatalf("corrupt values should fall back to defaults")
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newMemStore(), nil)

	items := []domain.HistoryItem{{ID: "h1", Topic: "t", Vibestack: "v", GeneratedPrompt: "p", Timestamp: 1}}
	if err := repo.SaveHistory(ctx, items); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveDarkMode(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveAPIKey(ctx, "sk-custom"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SavePresets(ctx, nil); err != nil {
		t.Fatal(err)
	}

	ws, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(items, ws.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if ws.DarkMode || ws.CustomKey != "sk-custom" {
		t.Errorf("theme/key not restored: dark=%v key=%q", ws.DarkMode, ws.CustomKey)
	}
	if len(ws.Presets) != 0 {
		t.Errorf("an explicitly emptied preset list must stay empty, got %d", len(ws.Presets))
	}
}

func TestGenerateSuccessPrependsHistory(t *testing.T) {
	ws := fixedWorkspace()
	ws.Topic = "A red fox"
	ws.Vibestack = "16mm film"
	ws.CustomKey = "k"
	ws.History = []domain.HistoryItem{{ID: "old"}}
	sub := &stubSubmitter{result: domain.Success("prompt text")}

	if _, err := ws.Generate(context.Background(), sub); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if ws.Status != domain.StateSucceeded || ws.Result != "prompt text" {
		t.Fatalf("unexpected state %s result %q", ws.Status, ws.Result)
	}
	if sub.gotKey != "k" || sub.gotReq.Duration != "8s" {
		t.Errorf("submitter got key %q req %+v", sub.gotKey, sub.gotReq)
	}
	want := domain.HistoryItem{
		ID:              "id-1",
		Topic:           "A red fox",
		Vibestack:       "16mm film",
		Duration:        "8s",
		ModelID:         domain.DefaultModelID,
		GeneratedPrompt: "prompt text",
		Timestamp:       1700000000000,
	}
	if len(ws.History) != 2 {
		t.Fatalf("history length = %d", len(ws.History))
	}
	if diff := cmp.Diff(want, ws.History[0]); diff != "" {
		t.Errorf("history head mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateFailureLeavesHistory(t *testing.T) {
	ws := fixedWorkspace()
	ws.Topic, ws.Vibestack = "t", "v"
	sub := &stubSubmitter{result: domain.Failure(domain.FailureInvalidCredential, "API key not valid", nil)}

	if _, err := ws.Generate(context.Background(), sub); err != nil {
		t.Fatal(err)
	}
	if ws.Status != domain.StateFailed || !ws.PromptForKey || ws.ErrorMessage != "API key not valid" {
		t.Fatalf("unexpected failure state: %+v", ws.Status)
	}
	if len(ws.History) != 0 {
		t.Fatal("failed generations must not be recorded")
	}
}

func TestGenerateValidationErrorRestoresState(t *testing.T) {
	ws := fixedWorkspace()
	sub := &stubSubmitter{err: errors.New("topic is required")}
	if _, err := ws.Generate(context.Background(), sub); err == nil {
		t.Fatal("expected error")
	}
	if ws.Status != domain.StateIdle {
		t.Fatalf("status = %s, want idle", ws.Status)
	}
}

func TestGenerateRejectsConcurrentSubmission(t *testing.T) {
	ws := fixedWorkspace()
	ws.Topic, ws.Vibestack = "t", "v"
	sub := &stubSubmitter{result: domain.Success("x"), release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := ws.Generate(context.Background(), sub)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for ws.CanGenerate() {
		if time.Now().After(deadline) {
			t.Fatal("first submission never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := ws.Generate(context.Background(), &stubSubmitter{}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(sub.release)
	if err := <-done; err != nil {
		t.Fatalf("first submission error = %v", err)
	}
	if len(ws.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(ws.History))
	}
}

func TestRestoreFillsDefaults(t *testing.T) {
	ws := NewWorkspace()
	ws.Restore(domain.HistoryItem{Topic: "t", Vibestack: "v", GeneratedPrompt: "p"}, "gemini-2.5-flash")
	if ws.Duration != "8s" || ws.ModelID != "gemini-2.5-flash" || ws.Result != "p" {
		t.Fatalf("unexpected restore: %+v", ws.Request())
	}

	ws.Restore(domain.HistoryItem{Topic: "t", Vibestack: "v", Duration: "15s", ModelID: "m"}, "ignored")
	if ws.Duration != "15s" || ws.ModelID != "m" {
		t.Fatalf("stored values should win: %+v", ws.Request())
	}
}

func TestApplyPresetAndFindHistory(t *testing.T) {
	ws := NewWorkspace()
	ws.ApplyPreset(domain.PresetVibe{Value: "grain"})
	ws.ApplyPreset(domain.PresetVibe{Value: "flare"})
	if ws.Vibestack != "grain\n\nflare" {
		t.Fatalf("vibestack = %q", ws.Vibestack)
	}

	ws.History = []domain.HistoryItem{{ID: "abc123"}, {ID: "abd456"}}
	if _, ok := ws.FindHistory("ab"); ok {
		t.Error("ambiguous prefix should not match")
	}
	if item, ok := ws.FindHistory("abd"); !ok || item.ID != "abd456" {
		t.Errorf("prefix lookup failed: %+v", item)
	}
}

func TestSearchHistory(t *testing.T) {
	items := []domain.HistoryItem{
		{ID: "1", Topic: "A lighthouse in a storm", Vibestack: "anamorphic"},
		{ID: "2", Topic: "A red fox in snow", Vibestack: "16mm grain"},
		{ID: "3", Topic: "Neon alley", Vibestack: "cyberpunk"},
	}
	got := SearchHistory(items, "fox", 0)
	if len(got) == 0 || got[0].ID != "2" {
		t.Fatalf("expected fox item first, got %+v", got)
	}
	if len(SearchHistory(items, "", 2)) != 2 {
		t.Error("empty query should honor the limit")
	}
	if len(SearchHistory(items, "zzzz", 0)) != 0 {
		t.Error("unmatched query should return nothing")
	}
}

func TestFormEditsDuringSubmission(t *testing.T) {
	ws := fixedWorkspace()
	ws.Topic, ws.Vibestack = "t", "v"
	sub := &stubSubmitter{result: domain.Success("x"), release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := ws.Generate(context.Background(), sub)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for ws.CanGenerate() {
		if time.Now().After(deadline) {
			t.Fatal("submission never started")
		}
		time.Sleep(time.Millisecond)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws.ApplyPreset(domain.PresetVibe{Value: "grain"})
			ws.FindHistory("id")
			ws.CanGenerate()
		}()
	}
	wg.Wait()
	close(sub.release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	ws.Restore(domain.HistoryItem{Topic: "r", Vibestack: "rv"}, "m")
	if item, ok := ws.FindHistory("id-1"); !ok || item.Vibestack != "v" {
		t.Fatalf("submitted request should be the pre-edit snapshot, got %+v", item)
	}
}
