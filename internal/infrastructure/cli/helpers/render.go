package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/doeshing/vibegen/internal/domain"
)

const snippetWidth = 60

// RenderResult prints a generated prompt. When raw is set only the text is
// written, suitable for piping.
func RenderResult(out io.Writer, theme Theme, text string, raw bool) {
	if raw {
		fmt.Fprintln(out, text)
		return
	}
	fmt.Fprintln(out, theme.Title.Render("Cinematic Prompt"))
	fmt.Fprintln(out, theme.Box.Render(text))
}

// RenderFailure prints a failed generation with its kind-specific hint.
func RenderFailure(out io.Writer, theme Theme, genErr *domain.GenerationError) {
	body := theme.Error.Render("Generation Failed") + "\n" + theme.Text.Render(genErr.Message)
	if genErr.Kind.NeedsCredential() {
		body += "\n\n" + theme.Muted.Render("Set a key with `vibegen key set` or export API_KEY.")
	}
	fmt.Fprintln(out, theme.ErrBox.Render(body))
}

// RenderHistory prints history items newest first.
func RenderHistory(out io.Writer, theme Theme, items []domain.HistoryItem) {
	for _, item := range items {
		fmt.Fprintf(out, "%s  %s  %s\n",
			theme.Accent.Render(ShortID(item.ID)),
			theme.Muted.Render(item.Time().Format("2006-01-02 15:04")),
			theme.Text.Render(Snippet(item.Topic, snippetWidth)))
	}
}

// RenderHistoryItem prints every field of one history item.
func RenderHistoryItem(out io.Writer, theme Theme, item domain.HistoryItem) {
	fmt.Fprintf(out, "%s %s\n", theme.Label.Render("ID:"), item.ID)
	fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Created:"), item.Time().Format(domain.TimestampFormat))
	fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Model:"), valueOr(item.ModelID, "(default)"))
	fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Duration:"), valueOr(item.Duration, domain.DefaultDuration))
	fmt.Fprintf(out, "%s\n%s\n", theme.Label.Render("Topic:"), item.Topic)
	fmt.Fprintf(out, "%s\n%s\n", theme.Label.Render("Vibestack:"), item.Vibestack)
	RenderResult(out, theme, item.GeneratedPrompt, false)
}

// RenderPresets prints the preset list.
func RenderPresets(out io.Writer, theme Theme, list []domain.PresetVibe) {
	for _, p := range list {
		fmt.Fprintf(out, "%s  %s\n", theme.Title.Render(p.Name), theme.Muted.Render("("+p.ID+")"))
		if p.Description != "" {
			fmt.Fprintf(out, "    %s\n", theme.Text.Render(p.Description))
		}
	}
}

// RenderPreset prints a preset including its value.
func RenderPreset(out io.Writer, theme Theme, p domain.PresetVibe) {
	fmt.Fprintf(out, "%s  %s\n", theme.Title.Render(p.Name), theme.Muted.Render("("+p.ID+")"))
	if p.Description != "" {
		fmt.Fprintln(out, theme.Text.Render(p.Description))
	}
	fmt.Fprintln(out, theme.Box.Render(p.Value))
}

// RenderModels prints the model catalog, marking the selected id.
func RenderModels(out io.Writer, theme Theme, models []domain.ModelOption, selected string) {
	for _, m := range models {
		marker := "  "
		if m.ID == selected {
			marker = theme.Success.Render("* ")
		}
		name := theme.Title.Render(m.Name)
		if m.IsNew {
			name += " " + theme.Accent.Render("NEW")
		}
		fmt.Fprintf(out, "%s%s  %s\n", marker, name, theme.Muted.Render(m.ID))
		if m.Description != "" {
			fmt.Fprintf(out, "    %s\n", theme.Text.Render(m.Description))
		}
		if m.Pricing != "" {
			fmt.Fprintf(out, "    %s %s\n", theme.Label.Render("Pricing:"), m.Pricing)
		}
	}
}

// RenderDoctorReport prints the health check report.
func RenderDoctorReport(out io.Writer, theme Theme, report domain.HealthReport) {
	for _, check := range report.Checks {
		var status string
		switch check.Status {
		case domain.HealthOK:
			status = theme.Success.Render("[OK]   ")
		case domain.HealthWarn:
			status = theme.Warning.Render("[WARN] ")
		default:
			status = theme.Error.Render("[ERROR]")
		}
		fmt.Fprintf(out, "%s %s - %s\n", status, check.Name, check.Details)
	}
}

// RenderMarkdown renders markdown with glamour, falling back to the raw text
// when the renderer cannot be built.
func RenderMarkdown(out io.Writer, theme Theme, md string, width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.ThemeName()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		_, werr := io.WriteString(out, md)
		return werr
	}
	rendered, err := r.Render(md)
	if err != nil {
		_, werr := io.WriteString(out, md)
		return werr
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// ShortID trims an id for list output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Snippet collapses whitespace and truncates s to width runes.
func Snippet(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
