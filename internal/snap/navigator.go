// Package snap turns continuous wheel, touch and keyboard input into discrete,
// eased transitions between full-viewport sections.
//
// A Navigator owns the navigation state. It computes offsets and progress and
// hands them to a Surface; it never draws anything itself. All methods must be
// called from the goroutine that delivers frame callbacks.
package snap

import (
	"log"
	"time"

	"code.cloudfoundry.org/clock"

	"sectionsnap/internal/domain"
)

// Publisher receives navigator notifications. eventbus.EventBus satisfies it.
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// Options configure a Navigator.
type Options struct {
	Config Config
	// Height is the viewport height in the same unit as input deltas.
	Height float64
	// Frames drives animations. Without it transitions settle immediately.
	Frames  FrameSource
	Surface Surface
	Bus     Publisher
	Clock   clock.Clock
}

// Navigator is a full-page section navigator.
type Navigator struct {
	cfg     Config
	easing  Easing
	layout  *layout
	frames  FrameSource
	surface Surface
	bus     Publisher
	clock   clock.Clock

	sections []Section
	parallax []Element
	animated []Element
	inView   map[int]bool

	state     State
	offset    float64
	active    *run
	gen       uint64
	lastWheel time.Time
	touch     touchState

	inert     bool
	destroyed bool
}

// New reorganizes page into full-height sections and returns its navigator.
// A page without sections yields an inert navigator that leaves the page
// untouched and ignores every call.
func New(page Page, opts Options) *Navigator {
	setOptionDefaults(&opts)

	n := &Navigator{
		cfg:     opts.Config,
		frames:  opts.Frames,
		surface: opts.Surface,
		bus:     opts.Bus,
		clock:   opts.Clock,
		inView:  make(map[int]bool),
		state:   State{IsEnabled: true},
	}

	easing, err := ParseEasing(n.cfg.SnapEasing)
	if err != nil {
		log.Printf("snap: %v, using %s", err, EaseOutCubicName)
		easing = EaseOutCubic
	}
	n.easing = easing

	if page != nil {
		n.sections = page.Sections()
	}
	for i := range n.sections {
		n.sections[i].Index = i
	}
	if len(n.sections) == 0 {
		log.Printf("snap: no sections found, navigator stays inert")
		n.inert = true
		return n
	}

	for _, el := range page.Elements() {
		if el.Section < 0 || el.Section >= len(n.sections) {
			continue
		}
		if el.ParallaxSpeed != 0 {
			n.parallax = append(n.parallax, el)
		}
		if el.AnimateOnScroll {
			n.animated = append(n.animated, el)
		}
	}

	n.layout = newLayout(page, len(n.sections))
	n.layout.apply(opts.Height)
	n.writeOffset(0)
	n.syncPresentation()

	log.Printf("snap: navigator ready with %d sections, height %.0f", len(n.sections), opts.Height)
	return n
}

func setOptionDefaults(o *Options) {
	if o.Clock == nil {
		o.Clock = clock.NewClock()
	}
	if o.Surface == nil {
		o.Surface = nopSurface{}
	}
	if o.Frames == nil {
		o.Frames = &immediateFrames{clock: o.Clock}
		o.Config.SnapDuration = 0
	}
}

// GoToSection animates to section i.
func (n *Navigator) GoToSection(i int) {
	n.ScrollToSection(i, true)
}

// GoToSectionID animates to the section with the given id. It reports
// whether such a section exists.
func (n *Navigator) GoToSectionID(id string) bool {
	if !n.usable() {
		return false
	}
	for _, s := range n.sections {
		if s.ID == id {
			n.ScrollToSection(s.Index, true)
			return true
		}
	}
	return false
}

// JumpToSection moves to section i without animation.
func (n *Navigator) JumpToSection(i int) {
	n.ScrollToSection(i, false)
}

// Next animates to the following section.
func (n *Navigator) Next() {
	n.ScrollToSection(n.state.CurrentSection+1, true)
}

// Prev animates to the preceding section.
func (n *Navigator) Prev() {
	n.ScrollToSection(n.state.CurrentSection-1, true)
}

// Enable resumes input handling.
func (n *Navigator) Enable() {
	n.setEnabled(true)
}

// Disable ignores input until Enable is called. Programmatic navigation
// keeps working.
func (n *Navigator) Disable() {
	n.setEnabled(false)
}

func (n *Navigator) setEnabled(enabled bool) {
	if !n.usable() || n.state.IsEnabled == enabled {
		return
	}
	n.state.IsEnabled = enabled
	if enabled {
		log.Printf("snap: scroll snapping enabled")
	} else {
		log.Printf("snap: scroll snapping paused")
	}
	if n.bus != nil {
		n.bus.Publish(domain.NavigatorToggledEvent{Enabled: enabled})
	}
}

// Resize applies a new viewport height and repositions on the current section.
func (n *Navigator) Resize(height float64) {
	if !n.usable() || height <= 0 {
		return
	}
	n.layout.resize(height)
	n.touch = touchState{}
	n.state.PendingDelta = 0
	n.ScrollToSection(n.state.CurrentSection, false)
}

// Destroy cancels any running transition and restores the original layout.
// The navigator ignores every call afterwards.
func (n *Navigator) Destroy() {
	if !n.usable() {
		return
	}
	n.cancelRun()
	n.touch = touchState{}
	n.layout.restore()
	n.destroyed = true
	log.Printf("snap: navigator destroyed")
	if n.bus != nil {
		n.bus.Publish(domain.NavigatorDestroyedEvent{})
	}
}

// State returns a copy of the navigation state.
func (n *Navigator) State() State {
	return n.state
}

// Sections returns the sections being navigated.
func (n *Navigator) Sections() []Section {
	out := make([]Section, len(n.sections))
	copy(out, n.sections)
	return out
}

// Snapshot returns the values a renderer needs for the current frame.
func (n *Navigator) Snapshot() Snapshot {
	s := Snapshot{
		State:         n.state,
		TotalSections: len(n.sections),
		Offset:        n.offset,
		Inert:         n.inert,
		Destroyed:     n.destroyed,
	}
	if n.inert {
		return s
	}
	s.Height = n.layout.height
	s.ContentHeight = n.layout.contentHeight()
	s.Progress = n.sectionProgress()
	s.HintVisible = n.state.CurrentSection != n.total()-1
	s.Fragment = n.sections[n.state.CurrentSection].ID
	return s
}

func (n *Navigator) usable() bool {
	return !n.inert && !n.destroyed
}

func (n *Navigator) total() int {
	return len(n.sections)
}
