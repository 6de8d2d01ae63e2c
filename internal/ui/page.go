package ui

import (
	"math"
	"strings"

	"sectionsnap/internal/domain"
	"sectionsnap/internal/snap"
	"sectionsnap/internal/ui/views"
)

// docPage presents a parsed document to the navigator. Sections become
// frames of exactly height rows while the page is reorganized.
type docPage struct {
	doc         *domain.Document
	height      int
	reorganized bool
}

func newDocPage(doc *domain.Document) *docPage {
	return &docPage{doc: doc}
}

func (p *docPage) Sections() []snap.Section {
	out := make([]snap.Section, len(p.doc.Sections))
	for i, s := range p.doc.Sections {
		out[i] = snap.Section{Index: i, ID: s.ID}
	}
	return out
}

func (p *docPage) Elements() []snap.Element {
	var out []snap.Element
	for i, s := range p.doc.Sections {
		for _, el := range s.Elements {
			out = append(out, snap.Element{
				Index:           len(out),
				Section:         i,
				ID:              el.ID,
				ParallaxSpeed:   el.ParallaxSpeed,
				AnimateOnScroll: el.AnimateOnScroll,
			})
		}
	}
	return out
}

func (p *docPage) Reorganize(height float64) {
	p.height = rows(height)
	p.reorganized = true
}

func (p *docPage) Resize(height float64) {
	p.height = rows(height)
}

func (p *docPage) Restore() {
	p.reorganized = false
}

// Reorganized reports whether sections are currently laid out as frames.
func (p *docPage) Reorganized() bool {
	return p.reorganized
}

// Plain returns the document in its original flowing layout.
func (p *docPage) Plain() string {
	var out []string
	for i, s := range p.doc.Sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s.Lines...)
	}
	return strings.Join(out, "\n")
}

// Layers builds the content layer for the renderer from the surface state.
func (p *docPage) Layers(s *screen) []views.SectionLayer {
	layers := make([]views.SectionLayer, len(p.doc.Sections))
	index := 0
	for i, sec := range p.doc.Sections {
		layer := views.SectionLayer{Lines: sec.Lines}
		for _, el := range sec.Elements {
			if el.ParallaxSpeed != 0 || el.AnimateOnScroll {
				layer.Elements = append(layer.Elements, views.ElementLayer{
					Line:     el.Line,
					Shift:    int(math.Round(s.parallax[index])),
					Animated: el.AnimateOnScroll,
					InView:   s.inView[index],
				})
			}
			index++
		}
		layers[i] = layer
	}
	return layers
}

// screen is the snap.Surface of the terminal view. It records what the
// navigator asks for; the model reads it back when rendering.
type screen struct {
	offset      float64
	activeDot   int
	progress    float64
	hintVisible bool
	fragment    string
	parallax    map[int]float64
	inView      map[int]bool
}

func newScreen() *screen {
	return &screen{
		parallax: make(map[int]float64),
		inView:   make(map[int]bool),
	}
}

func (s *screen) SetOffset(offset float64) {
	s.offset = offset
}

func (s *screen) SetActiveDot(index int) {
	s.activeDot = index
}

func (s *screen) SetProgress(fraction float64) {
	s.progress = fraction
}

func (s *screen) SetScrollHintVisible(visible bool) {
	s.hintVisible = visible
}

func (s *screen) ReplaceFragment(id string) {
	s.fragment = id
}

func (s *screen) SetParallaxOffset(el snap.Element, offset float64) {
	s.parallax[el.Index] = offset
}

func (s *screen) SetInView(el snap.Element, inView bool) {
	s.inView[el.Index] = inView
}

func rows(height float64) int {
	return int(math.Round(height))
}
