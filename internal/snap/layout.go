package snap

// Section is one full-viewport block the navigator moves between.
type Section struct {
	Index int
	ID    string
}

// Element is a tagged block inside a section.
type Element struct {
	Index           int // position in Page.Elements
	Section         int
	ID              string
	ParallaxSpeed   float64 // 0 means not tagged for parallax
	AnimateOnScroll bool
}

// Page is the document being navigated.
type Page interface {
	// Sections lists the sections in document order. Called once by New.
	Sections() []Section
	// Elements lists the tagged elements. Called once by New.
	Elements() []Element
	// Reorganize switches the page to a clipped frame holding a content layer
	// in which every section is exactly height units tall. Positioning from
	// then on happens only through Surface.SetOffset.
	Reorganize(height float64)
	// Resize re-applies the section sizing for a new viewport height.
	Resize(height float64)
	// Restore puts back the original layout.
	Restore()
}

// layout keeps the frame/content geometry of a reorganized page.
type layout struct {
	page    Page
	height  float64
	total   int
	applied bool
}

func newLayout(page Page, total int) *layout {
	return &layout{page: page, total: total}
}

func (l *layout) apply(height float64) {
	l.height = height
	l.page.Reorganize(height)
	l.applied = true
}

func (l *layout) resize(height float64) {
	l.height = height
	if l.applied {
		l.page.Resize(height)
	}
}

func (l *layout) restore() {
	if !l.applied {
		return
	}
	l.page.Restore()
	l.applied = false
}

// contentHeight is the total height of the content layer.
func (l *layout) contentHeight() float64 {
	return l.height * float64(l.total)
}

// offsetFor returns the content offset that shows section i.
func (l *layout) offsetFor(i int) float64 {
	return float64(-i) * l.height
}

// travel is the distance between the first and the last section.
func (l *layout) travel() float64 {
	return float64(l.total-1) * l.height
}

// scrollFraction converts a content offset into [0,1] page progress.
func (l *layout) scrollFraction(offset float64) float64 {
	t := l.travel()
	if t <= 0 {
		return 0
	}
	return clampUnit(-offset / t)
}

// visibleFraction returns how much of section i is inside the frame at offset.
func (l *layout) visibleFraction(i int, offset float64) float64 {
	if l.height <= 0 {
		return 0
	}
	top := float64(i)*l.height + offset
	bottom := top + l.height
	if top < 0 {
		top = 0
	}
	if bottom > l.height {
		bottom = l.height
	}
	if bottom <= top {
		return 0
	}
	return (bottom - top) / l.height
}
