// Package ui renders the CLI's terminal output: a spinner while requests
// run, the banner, dashboards and tables styled with the admin theme.
package ui

import (
	"io"
	"os"

	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Styles are the lipgloss styles derived from one palette.
type Styles struct {
	renderer *lipgloss.Renderer
	palette  theme.Palette

	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Accent   lipgloss.Style
	Danger   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Card     lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Spinner  lipgloss.Style
	Selected lipgloss.Style
}

// NewStyles builds styles for out from the theme. The dark palette is used
// when the terminal has a dark background. Colour is dropped automatically
// when out is not a terminal.
func NewStyles(out io.Writer, th theme.Theme) Styles {
	r := lipgloss.NewRenderer(out)

	p := th.Light
	if r.HasDarkBackground() {
		p = th.Dark
	}
	return newStyles(r, p)
}

func newStyles(r *lipgloss.Renderer, p theme.Palette) Styles {
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	return Styles{
		renderer: r,
		palette:  p,

		Title:  r.NewStyle().Bold(true).Foreground(c(p.Primary)),
		Subtle: r.NewStyle().Foreground(c(p.MutedForeground)),
		Accent: r.NewStyle().Foreground(c(p.Primary)),
		Danger: r.NewStyle().Bold(true).Foreground(c(p.Destructive)),
		Label:  r.NewStyle().Foreground(c(p.MutedForeground)),
		Value:  r.NewStyle().Bold(true).Foreground(c(p.Foreground)),
		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Border)).
			Padding(0, 2).
			MarginRight(1),
		Header:   r.NewStyle().Bold(true).Foreground(c(p.Primary)).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Spinner:  r.NewStyle().Foreground(c(p.Primary)),
		Selected: r.NewStyle().Foreground(c(p.PrimaryForeground)).Background(c(p.Primary)),
	}
}

// Palette returns the palette the styles were built from.
func (s Styles) Palette() theme.Palette { return s.palette }
