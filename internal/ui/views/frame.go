package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionLayer is one section of the content layer, ready to be drawn.
type SectionLayer struct {
	Lines    []string
	Elements []ElementLayer
}

// ElementLayer describes how a tagged line is drawn.
type ElementLayer struct {
	Line     int // line within the section
	Shift    int // parallax displacement in rows, positive moves down
	Animated bool
	InView   bool
}

// FrameRows draws the rows of the content layer that fall inside a frame of
// the given height when the layer is moved by offset. Every section occupies
// exactly height rows.
func (r *Renderer) FrameRows(sections []SectionLayer, height, width int, offset float64) []string {
	rows := make([]string, height)
	if height <= 0 {
		return rows
	}

	top := int(math.Round(-offset))
	cache := make(map[int][]string, 2)
	for i := range rows {
		abs := top + i
		if abs < 0 {
			continue
		}
		sec := abs / height
		if sec >= len(sections) {
			continue
		}
		drawn, ok := cache[sec]
		if !ok {
			drawn = r.sectionRows(sections[sec], height, width)
			cache[sec] = drawn
		}
		rows[i] = drawn[abs%height]
	}
	return rows
}

// sectionRows lays a section out on exactly height rows. Lines past the
// bottom are clipped; parallax elements are moved to their shifted row.
func (r *Renderer) sectionRows(layer SectionLayer, height, width int) []string {
	order := make([]int, height)
	for i := range order {
		order[i] = -1
		if i < len(layer.Lines) {
			order[i] = i
		}
	}

	byLine := make(map[int]ElementLayer, len(layer.Elements))
	for _, el := range layer.Elements {
		byLine[el.Line] = el
		if el.Shift == 0 || el.Line >= height {
			continue
		}
		from := indexOf(order, el.Line)
		if from < 0 {
			continue
		}
		order = moveRow(order, from, clampRow(el.Line+el.Shift, height))
	}

	out := make([]string, height)
	for i, line := range order {
		if line < 0 {
			continue
		}
		el, tagged := byLine[line]
		out[i] = r.styleLine(layer.Lines[line], el, tagged, width)
	}
	return out
}

func (r *Renderer) styleLine(text string, el ElementLayer, tagged bool, width int) string {
	style := r.styles.Body
	switch {
	case tagged && el.Animated && el.InView:
		style = r.styles.InView
	case tagged && el.Animated:
		style = r.styles.OutOfView
	case strings.HasPrefix(text, "#"):
		style = r.styles.Heading
	}
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(text)
}

// Dots draws the navigation dot column, centered on height rows.
func (r *Renderer) Dots(total, active, height int) []string {
	rows := make([]string, height)
	if total <= 0 || height <= 0 {
		return rows
	}
	colors := DotColors(total, r.styles.DotFrom, r.styles.DotTo)
	start := (height - total) / 2
	if start < 0 {
		start = 0
	}
	for i := 0; i < total && start+i < height; i++ {
		if i == active {
			rows[start+i] = r.styles.DotActive.Foreground(colors[i]).Render("●")
		} else {
			rows[start+i] = r.styles.DotInactive.Foreground(colors[i]).Render("○")
		}
	}
	return rows
}

// joinColumns puts right next to left, padding left to width cells.
func joinColumns(left, right []string, width int) []string {
	out := make([]string, len(left))
	for i, l := range left {
		pad := width - lipgloss.Width(l)
		if pad < 0 {
			pad = 0
		}
		out[i] = l + strings.Repeat(" ", pad)
		if i < len(right) {
			out[i] += right[i]
		}
		out[i] = strings.TrimRight(out[i], " ")
	}
	return out
}

func indexOf(rows []int, line int) int {
	for i, l := range rows {
		if l == line {
			return i
		}
	}
	return -1
}

func moveRow(rows []int, from, to int) []int {
	if from == to {
		return rows
	}
	v := rows[from]
	rows = append(rows[:from], rows[from+1:]...)
	rows = append(rows[:to], append([]int{v}, rows[to:]...)...)
	return rows
}

func clampRow(i, height int) int {
	if i < 0 {
		return 0
	}
	if i > height-1 {
		return height - 1
	}
	return i
}
