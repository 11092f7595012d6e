package presets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/vibegen/internal/domain"
)

func TestDefaults(t *testing.T) {
	list := Defaults()
	if len(list) != 8 {
		t.Fatalf("expected 8 built-in presets, got %d", len(list))
	}
	if list[1].ID != "analog-16mm" || list[1].Name != "Analog 16mm" {
		t.Fatalf("unexpected second preset: %+v", list[1])
	}

	list[0].Name = "mutated"
	if Defaults()[0].Name == "mutated" {
		t.Fatal("Defaults must return a fresh copy")
	}
}

func TestNew(t *testing.T) {
	p, err := New("  Night Drive ", "", "  sodium vapor, long lens  ")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Name != "Night Drive" || p.Value != "sodium vapor, long lens" || p.Description != domain.DefaultPresetDescription {
		t.Fatalf("unexpected preset: %+v", p)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := New(" ", "", "x"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := New("name", "", "\n"); !errors.Is(err, ErrEmptyVibestack) {
		t.Fatalf("expected ErrEmptyVibestack, got %v", err)
	}
}

func TestDeleteAndFind(t *testing.T) {
	list := []domain.PresetVibe{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}

	if p, ok := Find(list, "beta"); !ok || p.ID != "b" {
		t.Fatalf("Find by name failed: %+v %v", p, ok)
	}

	out, err := Delete(list, "a")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if diff := cmp.Diff([]domain.PresetVibe{{ID: "b", Name: "Beta"}}, out); diff != "" {
		t.Fatalf("Delete() mismatch (-want +got):\n%s", diff)
	}
	if len(list) != 2 {
		t.Fatal("Delete must not modify its input")
	}
	if _, err := Delete(list, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApply(t *testing.T) {
	if got := Apply("  ", "16mm"); got != "16mm" {
		t.Errorf("blank vibestack: got %q", got)
	}
	if got := Apply("handheld", "16mm"); got != "handheld\n\n16mm" {
		t.Errorf("append: got %q", got)
	}
}

func TestImportValidatesEveryElement(t *testing.T) {
	bad := []byte(`[{"id":"x","name":"X","value":"v"},{"id":"y","name":"","value":"v"}]`)
	list := Defaults()
	out, added, err := Import(list, bad)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if added != 0 || len(out) != len(list) {
		t.Fatal("rejected import must not change the list")
	}

	if _, _, err := Import(list, []byte(`{"id":"x"}`)); err == nil {
		t.Fatal("expected parse error for non-array JSON")
	}
}

func TestImportSkipsDuplicateIDs(t *testing.T) {
	list := []domain.PresetVibe{{ID: "cyberpunk-noir", Name: "Cyberpunk Noir", Value: "neon"}}
	data := []byte(`[
		{"id":"cyberpunk-noir","name":"Other","value":"other"},
		{"id":"new-one","name":"New","value":"fresh"}
	]`)

	out, added, err := Import(list, data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	want := []domain.PresetVibe{
		{ID: "cyberpunk-noir", Name: "Cyberpunk Noir", Value: "neon"},
		{ID: "new-one", Name: "New", Value: "fresh"},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("Import() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportIsIndentedAndReimportable(t *testing.T) {
	data, err := Export(Defaults())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"id\"") {
		t.Fatalf("unexpected export layout: %.40q", data)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(Defaults(), parsed); diff != "" {
		t.Fatalf("export/import mismatch (-want +got):\n%s", diff)
	}

	empty, err := Export(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("Export(nil) = %q, %v", empty, err)
	}
}

func TestSearch(t *testing.T) {
	list := Defaults()
	got := Search(list, "16mm")
	if len(got) == 0 || got[0].ID != "analog-16mm" {
		t.Fatalf("expected analog-16mm first, got %+v", got)
	}
	if len(Search(list, "")) != len(list) {
		t.Fatal("empty query should return everything")
	}
}
