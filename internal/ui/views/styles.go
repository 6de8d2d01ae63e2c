package views

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Confirm      lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	StatusPaused lipgloss.Style
	StatusError  lipgloss.Style
	Fragment     lipgloss.Style
	Prompt       lipgloss.Style
	Heading      lipgloss.Style
	Body         lipgloss.Style
	InView       lipgloss.Style
	OutOfView    lipgloss.Style
	Hint         lipgloss.Style
	Help         lipgloss.Style
	DotActive    lipgloss.Style
	DotInactive  lipgloss.Style

	// Navigation dots fade from DotFrom to DotTo down the page
	DotFrom string
	DotTo   string
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Confirm:      lipgloss.NewStyle().Bold(true),
		Dim:          lipgloss.NewStyle().Faint(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusPaused: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Fragment:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Prompt:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Heading:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		InView:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		OutOfView:    lipgloss.NewStyle().Faint(true),
		Hint:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:         lipgloss.NewStyle().Faint(true),
		DotActive:    lipgloss.NewStyle().Bold(true),
		DotInactive:  lipgloss.NewStyle().Faint(true),
		DotFrom:      "#5A56E0",
		DotTo:        "#EE6FF8",
	}
}

// DotColors spreads n colors evenly between from and to.
func DotColors(n int, from, to string) []lipgloss.Color {
	a, b := hexColor(from), hexColor(to)
	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(a.BlendHcl(b, t).Clamped().Hex())
	}
	return out
}

// hexColor parses s or returns pure red so the mistake stands out.
func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 1}
	}
	return c
}
