package snap

// Surface receives the content offset. It is the only capability a rendering
// adapter must provide; the optional ones below are detected with a type
// assertion and skipped when absent.
type Surface interface {
	SetOffset(offset float64)
}

// DotIndicator highlights the navigation dot of the active section.
type DotIndicator interface {
	SetActiveDot(index int)
}

// ProgressIndicator shows how far the current section is through the page.
type ProgressIndicator interface {
	SetProgress(fraction float64)
}

// ScrollHint shows or hides the "more below" indicator.
type ScrollHint interface {
	SetScrollHintVisible(visible bool)
}

// Location replaces the location fragment without adding a history entry.
type Location interface {
	ReplaceFragment(id string)
}

// ParallaxTarget moves elements tagged with a parallax speed.
type ParallaxTarget interface {
	SetParallaxOffset(el Element, offset float64)
}

// VisibilityTarget marks elements that scrolled into or out of view.
type VisibilityTarget interface {
	SetInView(el Element, inView bool)
}

// inViewThreshold is the visible share of a section needed to mark its
// elements as in view.
const inViewThreshold = 0.5

// defaultParallaxSpeed replaces missing or zero parallax speeds.
const defaultParallaxSpeed = 0.5

type nopSurface struct{}

func (nopSurface) SetOffset(float64) {}

// writeOffset moves the content layer and refreshes element visibility.
func (n *Navigator) writeOffset(offset float64) {
	n.offset = offset
	n.surface.SetOffset(offset)
	n.updateVisibility()
}

// syncPresentation reflects CurrentSection into the dots, the progress bar,
// the scroll hint and the location fragment.
func (n *Navigator) syncPresentation() {
	cur := n.state.CurrentSection

	if n.cfg.EnableNavigationDots {
		if d, ok := n.surface.(DotIndicator); ok {
			d.SetActiveDot(cur)
		}
	}

	if n.cfg.EnableProgress {
		if p, ok := n.surface.(ProgressIndicator); ok {
			p.SetProgress(n.sectionProgress())
		}
	}

	if h, ok := n.surface.(ScrollHint); ok {
		h.SetScrollHintVisible(cur != n.total()-1)
	}

	if loc, ok := n.surface.(Location); ok {
		if id := n.sections[cur].ID; id != "" {
			loc.ReplaceFragment(id)
		}
	}
}

// sectionProgress is the progress bar fill for the committed section.
func (n *Navigator) sectionProgress() float64 {
	return n.layout.scrollFraction(n.layout.offsetFor(n.state.CurrentSection))
}

// updateParallax displaces parallax elements by the linear progress p of the
// running transition. Jumps and touch moves leave them where they are.
func (n *Navigator) updateParallax(p float64) {
	if !n.cfg.EnableParallax || len(n.parallax) == 0 {
		return
	}
	target, ok := n.surface.(ParallaxTarget)
	if !ok {
		return
	}
	for _, el := range n.parallax {
		target.SetParallaxOffset(el, ParallaxOffset(p, n.layout.height, el.ParallaxSpeed))
	}
}

// ParallaxOffset returns the displacement of an element with the given speed
// at transition progress p for viewport height h.
func ParallaxOffset(p, h, speed float64) float64 {
	if speed == 0 {
		speed = defaultParallaxSpeed
	}
	return p * h * speed * 0.5
}

func (n *Navigator) updateVisibility() {
	if len(n.animated) == 0 {
		return
	}
	target, ok := n.surface.(VisibilityTarget)
	if !ok {
		return
	}
	for _, el := range n.animated {
		inView := n.layout.visibleFraction(el.Section, n.offset) >= inViewThreshold
		if prev, seen := n.inView[el.Index]; seen && prev == inView {
			continue
		}
		n.inView[el.Index] = inView
		target.SetInView(el, inView)
	}
}
