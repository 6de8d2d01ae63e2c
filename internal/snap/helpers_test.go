package snap

import (
	"fmt"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	"sectionsnap/internal/domain"
)

const testHeight = 1000.0

type fakePage struct {
	sections    []Section
	elements    []Element
	reorganized []float64
	resized     []float64
	restored    int
}

func newFakePage(n int) *fakePage {
	p := &fakePage{}
	for i := 0; i < n; i++ {
		p.sections = append(p.sections, Section{Index: i, ID: fmt.Sprintf("s%d", i)})
	}
	return p
}

func (p *fakePage) Sections() []Section       { return p.sections }
func (p *fakePage) Elements() []Element       { return p.elements }
func (p *fakePage) Reorganize(height float64) { p.reorganized = append(p.reorganized, height) }
func (p *fakePage) Resize(height float64)     { p.resized = append(p.resized, height) }
func (p *fakePage) Restore()                  { p.restored++ }

// manualFrames delivers frame callbacks only when Tick is called.
type manualFrames struct {
	next       FrameHandle
	pending    map[FrameHandle]func(time.Time)
	order      []FrameHandle
	maxPending int
}

func newManualFrames() *manualFrames {
	return &manualFrames{pending: make(map[FrameHandle]func(time.Time))}
}

func (f *manualFrames) RequestFrame(fn func(now time.Time)) FrameHandle {
	f.next++
	f.pending[f.next] = fn
	f.order = append(f.order, f.next)
	if len(f.pending) > f.maxPending {
		f.maxPending = len(f.pending)
	}
	return f.next
}

func (f *manualFrames) CancelFrame(h FrameHandle) {
	delete(f.pending, h)
}

func (f *manualFrames) Tick(now time.Time) {
	order := f.order
	f.order = nil
	for _, h := range order {
		fn, ok := f.pending[h]
		if !ok {
			continue
		}
		delete(f.pending, h)
		fn(now)
	}
}

func (f *manualFrames) Pending() int { return len(f.pending) }

// recordingSurface implements every optional surface capability.
type recordingSurface struct {
	offsets   []float64
	activeDot int
	dotCalls  int
	progress  float64
	hint      bool
	hintCalls int
	fragments []string
	parallax  map[string]float64
	inView    map[string]bool
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		activeDot: -1,
		parallax:  make(map[string]float64),
		inView:    make(map[string]bool),
	}
}

func (s *recordingSurface) SetOffset(offset float64) { s.offsets = append(s.offsets, offset) }
func (s *recordingSurface) SetActiveDot(index int)   { s.activeDot = index; s.dotCalls++ }
func (s *recordingSurface) SetProgress(f float64)    { s.progress = f }
func (s *recordingSurface) SetScrollHintVisible(v bool) {
	s.hint = v
	s.hintCalls++
}
func (s *recordingSurface) ReplaceFragment(id string) { s.fragments = append(s.fragments, id) }
func (s *recordingSurface) SetParallaxOffset(el Element, offset float64) {
	s.parallax[el.ID] = offset
}
func (s *recordingSurface) SetInView(el Element, inView bool) { s.inView[el.ID] = inView }

func (s *recordingSurface) lastOffset() float64 {
	if len(s.offsets) == 0 {
		return 0
	}
	return s.offsets[len(s.offsets)-1]
}

func (s *recordingSurface) countOffset(v float64) int {
	n := 0
	for _, o := range s.offsets {
		if o == v {
			n++
		}
	}
	return n
}

// offsetOnlySurface has none of the optional capabilities.
type offsetOnlySurface struct {
	last float64
}

func (s *offsetOnlySurface) SetOffset(offset float64) { s.last = offset }

type recordingBus struct {
	events []domain.DomainEvent
}

func (b *recordingBus) Publish(e domain.DomainEvent) { b.events = append(b.events, e) }

func (b *recordingBus) sectionChanges() []domain.SectionChangedEvent {
	var out []domain.SectionChangedEvent
	for _, e := range b.events {
		if sc, ok := e.(domain.SectionChangedEvent); ok {
			out = append(out, sc)
		}
	}
	return out
}

type harness struct {
	t       *testing.T
	nav     *Navigator
	page    *fakePage
	frames  *manualFrames
	surface *recordingSurface
	bus     *recordingBus
	clock   *fakeclock.FakeClock
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.WheelSensitivity = 1.0
	return cfg
}

func newHarness(t *testing.T, sections int, cfg Config) *harness {
	return newHarnessWithPage(t, newFakePage(sections), cfg)
}

func newHarnessWithPage(t *testing.T, page *fakePage, cfg Config) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		page:    page,
		frames:  newManualFrames(),
		surface: newRecordingSurface(),
		bus:     &recordingBus{},
		clock:   fakeclock.NewFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	h.nav = New(page, Options{
		Config:  cfg,
		Height:  testHeight,
		Frames:  h.frames,
		Surface: h.surface,
		Bus:     h.bus,
		Clock:   h.clock,
	})
	return h
}

// advance moves the clock and delivers one frame.
func (h *harness) advance(d time.Duration) {
	h.clock.Increment(d)
	h.frames.Tick(h.clock.Now())
}

// settle delivers 16ms frames until no frame is pending.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; i < 10000 && h.frames.Pending() > 0; i++ {
		h.advance(16 * time.Millisecond)
	}
	if h.frames.Pending() > 0 {
		h.t.Fatal("animation did not settle")
	}
}
