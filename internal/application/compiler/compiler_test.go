package compiler

import (
	"strings"
	"testing"
)

func TestCompileIsDeterministic(t *testing.T) {
	inputs := [][3]string{
		{"a red fox in snow", "16mm grain, handheld", "8s"},
		{"", "", ""},
		{"neon alley", "teal and orange\n\nvolumetric fog", "15s"},
	}
	for _, in := range inputs {
		first := Compile(in[0], in[1], in[2])
		second := Compile(in[0], in[1], in[2])
		if first != second {
			t.Fatalf("Compile(%q) not deterministic", in)
		}
	}
}

func TestCompileReplacesAllPlaceholders(t *testing.T) {
	out := Compile("a lighthouse at dusk", "anamorphic flares", "5s")

	for _, token := range Placeholders() {
		if strings.Contains(out, token) {
			t.Errorf("compiled prompt still contains %s", token)
		}
	}
	for _, want := range []string{"TOPIC:\na lighthouse at dusk\n", "VIBESTACK:\nanamorphic flares\n", "DURATION: 5s\n", "PACED FOR A 5s CLIP"} {
		if !strings.Contains(out, want) {
			t.Errorf("compiled prompt missing %q", want)
		}
	}
}

func TestCompileDoesNotResubstitute(t *testing.T) {
	out := Compile("{{VIBESTACK}}", "grain {{TOPIC}} {{DURATION}}", "10s")

	if !strings.Contains(out, "TOPIC:\n{{VIBESTACK}}\n") {
		t.Error("topic value containing a placeholder was altered")
	}
	if !strings.Contains(out, "VIBESTACK:\ngrain {{TOPIC}} {{DURATION}}\n") {
		t.Error("vibestack value containing placeholders was altered")
	}
}

func TestCompileLeavesTemplateProseUntouched(t *testing.T) {
	c := New("A {{TOPIC}} B {{VIBESTACK}} C {{DURATION}} D {{DURATION}}")
	got := c.Compile("t", "v", "8s")
	if want := "A t B v C 8s D 8s"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMasterTemplateCarriesPlaceholders(t *testing.T) {
	tmpl := Default().Template()
	counts := map[string]int{
		PlaceholderDuration:  2,
		PlaceholderTopic:     1,
		PlaceholderVibestack: 1,
	}
	for token, want := range counts {
		if got := strings.Count(tmpl, token); got != want {
			t.Errorf("template has %d occurrences of %s, want %d", got, token, want)
		}
	}
	if !strings.HasPrefix(tmpl, "\nYou are a “Cinematic Prompt Compiler.”") {
		t.Error("template preamble changed")
	}
	if !strings.HasSuffix(tmpl, "VIBESTACK:\n{{VIBESTACK}}\n") {
		t.Error("template inputs block changed")
	}
}

func TestCompileFoxScenario(t *testing.T) {
	out := Compile("a red fox in snow", "16mm grain, handheld", "8s")

	for _, want := range []string{"DURATION: 8s", "a red fox in snow", "16mm grain, handheld"} {
		if n := strings.Count(out, want); n != 1 {
			t.Errorf("%q appears %d times, want 1", want, n)
		}
	}
}
