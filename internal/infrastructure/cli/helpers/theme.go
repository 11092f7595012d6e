package helpers

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors for one theme.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("205"),
		Secondary: lipgloss.Color("33"),
		Accent:    lipgloss.Color("214"),
		Success:   lipgloss.Color("10"),
		Warning:   lipgloss.Color("11"),
		Error:     lipgloss.Color("9"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("244"),
		Border:    lipgloss.Color("238"),
	}
	lightPalette = Palette{
		Primary:   lipgloss.Color("125"),
		Secondary: lipgloss.Color("24"),
		Accent:    lipgloss.Color("130"),
		Success:   lipgloss.Color("22"),
		Warning:   lipgloss.Color("136"),
		Error:     lipgloss.Color("160"),
		Text:      lipgloss.Color("232"),
		Muted:     lipgloss.Color("240"),
		Border:    lipgloss.Color("248"),
	}
)

// Theme holds the styles used for terminal output. Styles are bound to the
// output writer so redirected output carries no escape codes.
type Theme struct {
	Dark bool

	Title   lipgloss.Style
	Label   lipgloss.Style
	Accent  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
	ErrBox  lipgloss.Style
}

// NewTheme builds the dark or light theme for out.
func NewTheme(out io.Writer, dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	r := lipgloss.NewRenderer(out)

	return Theme{
		Dark:    dark,
		Title:   r.NewStyle().Foreground(p.Primary).Bold(true),
		Label:   r.NewStyle().Foreground(p.Secondary).Bold(true),
		Accent:  r.NewStyle().Foreground(p.Accent),
		Text:    r.NewStyle().Foreground(p.Text),
		Muted:   r.NewStyle().Foreground(p.Muted),
		Success: r.NewStyle().Foreground(p.Success).Bold(true),
		Warning: r.NewStyle().Foreground(p.Warning).Bold(true),
		Error:   r.NewStyle().Foreground(p.Error).Bold(true),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		ErrBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Padding(0, 1),
	}
}

// ThemeName returns "dark" or "light".
func (t Theme) ThemeName() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}
