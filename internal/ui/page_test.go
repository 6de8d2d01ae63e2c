package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sectionsnap/internal/domain"
	"sectionsnap/internal/snap"
	"sectionsnap/internal/ui/views"
)

func TestDocPageSectionsAndElements(t *testing.T) {
	doc := tourDocument()
	doc.Sections[2].Elements = []domain.Element{
		{ID: "price", Line: 2, ParallaxSpeed: 1},
		{ID: "plain", Line: 1},
	}
	page := newDocPage(doc)

	assert.Equal(t, []snap.Section{
		{Index: 0, ID: "start"},
		{Index: 1, ID: "features"},
		{Index: 2, ID: "pricing"},
	}, page.Sections())

	assert.Equal(t, []snap.Element{
		{Index: 0, Section: 1, ID: "features", ParallaxSpeed: 0.5, AnimateOnScroll: true},
		{Index: 1, Section: 2, ID: "price", ParallaxSpeed: 1},
		{Index: 2, Section: 2, ID: "plain"},
	}, page.Elements())
}

func TestDocPageLayout(t *testing.T) {
	page := newDocPage(tourDocument())
	assert.False(t, page.Reorganized())

	page.Reorganize(19.6)
	assert.True(t, page.Reorganized())
	assert.Equal(t, 20, page.height)

	page.Resize(12.2)
	assert.Equal(t, 12, page.height)

	page.Restore()
	assert.False(t, page.Reorganized())
	assert.Equal(t, "## Start\n\nWelcome.\n\n## Features\n\nFast.\n\n## Pricing\n\nFree.", page.Plain())
}

func TestDocPageLayers(t *testing.T) {
	doc := tourDocument()
	doc.Sections[2].Elements = []domain.Element{
		{ID: "price", Line: 2, ParallaxSpeed: 1},
		{ID: "plain", Line: 1},
	}
	page := newDocPage(doc)
	s := newScreen()
	s.SetParallaxOffset(snap.Element{Index: 1}, 2.6)
	s.SetInView(snap.Element{Index: 0}, true)

	layers := page.Layers(s)
	assert.Len(t, layers, 3)
	assert.Empty(t, layers[0].Elements)
	assert.Equal(t, []views.ElementLayer{{Line: 0, Animated: true, InView: true}}, layers[1].Elements)
	assert.Equal(t, []views.ElementLayer{{Line: 2, Shift: 3}}, layers[2].Elements, "untagged elements are not layered")
	assert.Equal(t, doc.Sections[2].Lines, layers[2].Lines)
}

func TestScreenRecordsSurfaceCalls(t *testing.T) {
	s := newScreen()
	s.SetOffset(-12.5)
	s.SetActiveDot(2)
	s.SetProgress(0.5)
	s.SetScrollHintVisible(true)
	s.ReplaceFragment("pricing")

	assert.Equal(t, -12.5, s.offset)
	assert.Equal(t, 2, s.activeDot)
	assert.Equal(t, 0.5, s.progress)
	assert.True(t, s.hintVisible)
	assert.Equal(t, "pricing", s.fragment)
}
