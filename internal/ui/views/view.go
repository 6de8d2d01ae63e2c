package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ReadyMarker is printed with every frame when the e2e driver asks for it.
const ReadyMarker = "__READY__"

// DotColumn is the width reserved for the navigation dots.
const DotColumn = 3

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Title    string
	Document string
	Fragment string

	Sections      []SectionLayer
	SectionHeight int
	Offset        float64
	Current       int
	Total         int

	ShowDots     bool
	ActiveDot    int
	ShowProgress bool
	Progress     float64
	HintVisible  bool
	Paused       bool

	// Restored is set once the navigator is gone and the plain document is shown
	Restored        bool
	RestoredContent string

	StatusMessage  string
	StatusIsError  bool
	InputPrompt    string
	TextInput      string
	ConfirmDestroy bool

	HelpModel help.Model
	KeyMap    help.KeyMap

	Ready bool
}

// ChromeRows is the number of rows around the section frame: the title bar,
// the scroll hint, the footer and, when enabled, the progress bar.
func ChromeRows(showProgress bool) int {
	if showProgress {
		return 4
	}
	return 3
}

// Renderer handles all view rendering
type Renderer struct {
	styles   *Styles
	progress progress.Model
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:   styles,
		progress: progress.New(progress.WithGradient(styles.DotFrom, styles.DotTo), progress.WithoutPercentage()),
	}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width == 0 {
		return "Loading..."
	}

	lines := []string{r.titleLine(state)}

	showProgress := state.ShowProgress && !state.Restored
	frameHeight := state.Height - ChromeRows(showProgress)
	if frameHeight < 0 {
		frameHeight = 0
	}

	var body []string
	if state.Restored {
		body = strings.Split(state.RestoredContent, "\n")
	} else {
		body = r.FrameRows(state.Sections, state.SectionHeight, state.Width-DotColumn, state.Offset)
		if state.ShowDots {
			body = joinColumns(body, r.Dots(state.Total, state.ActiveDot, len(body)), state.Width-DotColumn+1)
		}
	}

	// full help covers the bottom of the frame
	footer := r.footer(state)
	footerRows := strings.Split(footer, "\n")
	keep := frameHeight - (len(footerRows) - 1)
	if keep < 0 {
		keep = 0
	}
	lines = append(lines, fitRows(body, keep)...)

	hint := ""
	if state.HintVisible && !state.Restored {
		hint = r.styles.Hint.Render("▼ more below")
	}
	lines = append(lines, hint)

	if showProgress {
		r.progress.Width = state.Width
		lines = append(lines, r.progress.ViewAs(state.Progress))
	}

	lines = append(lines, footerRows...)
	return strings.Join(lines, "\n")
}

func (r *Renderer) titleLine(state ViewState) string {
	title := r.styles.Title.Render(state.Title)

	var right []string
	if state.Paused {
		right = append(right, r.styles.StatusPaused.Render("snapping paused"))
	}
	if state.Restored {
		right = append(right, r.styles.Dim.Render("plain layout"))
	} else if state.Total > 0 {
		right = append(right, r.styles.Status.Render(fmt.Sprintf("%d/%d", state.Current+1, state.Total)))
	}
	if state.Fragment != "" {
		right = append(right, r.styles.Fragment.Render(state.Document+"#"+state.Fragment))
	}
	if state.Ready {
		right = append(right, ReadyMarker)
	}
	rightContent := strings.Join(right, "  ")

	padding := state.Width - lipgloss.Width(title) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return title + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) footer(state ViewState) string {
	switch {
	case state.ConfirmDestroy:
		return r.styles.Confirm.Render("Restore the plain layout and stop snapping? (y/n)")
	case state.InputPrompt != "":
		return r.styles.Prompt.Render(state.InputPrompt) + state.TextInput
	case state.StatusMessage != "" && state.StatusIsError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case state.StatusMessage != "":
		return r.styles.Status.Render(state.StatusMessage)
	case state.KeyMap != nil:
		h := state.HelpModel
		h.Width = state.Width
		return h.View(state.KeyMap)
	}
	return r.styles.Help.Render("Press ? for help")
}

// fitRows pads or cuts rows to exactly n entries.
func fitRows(rows []string, n int) []string {
	if len(rows) >= n {
		return rows[:n]
	}
	return append(rows, make([]string, n-len(rows))...)
}
