package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"sectionsnap/internal/ui/input/modes"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys modes.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys modes.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("sectionsnap Help"))
	help.WriteString("\n")

	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Sections", []key.Binding{r.keys.Down, r.keys.Up, r.keys.First, r.keys.Last, r.keys.Jump}},
		{"Snapping", []key.Binding{r.keys.ToggleSnap, r.keys.Destroy}},
		{"Search", []key.Binding{r.keys.Search, r.keys.NextMatch, r.keys.PrevMatch}},
		{"Other", []key.Binding{r.keys.Pager, r.keys.Reload, r.keys.Help, r.keys.HelpPager, r.keys.Quit}},
	}

	width := 0
	for _, g := range groups {
		for _, b := range g.bindings {
			if w := lipgloss.Width(b.Help().Key); w > width {
				width = w
			}
		}
	}

	for _, g := range groups {
		help.WriteString(sectionStyle.Render(g.title))
		help.WriteString("\n")
		for _, b := range g.bindings {
			k := b.Help().Key
			pad := strings.Repeat(" ", width-lipgloss.Width(k)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(k), pad, descStyle.Render(b.Help().Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("wheel"), descStyle.Render("scroll; enough movement snaps to the next section")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("drag "), descStyle.Render("swipe between sections")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("dots "), descStyle.Render("click a dot to go to its section")))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Open FILE#id to start at a section."))

	return help.String()
}
