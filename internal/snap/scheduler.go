package snap

import (
	"time"

	"sectionsnap/internal/domain"
)

// run is one animation from start to target. A run stops writing as soon as
// it is no longer the navigator's active run.
type run struct {
	gen       uint64
	start     float64
	target    float64
	startTime time.Time
	started   bool
	emit      bool // publish SectionChangedEvent on settle
	handle    FrameHandle
}

// ScrollToSection moves to section target. The index is clamped to the
// available sections. With animate the move is eased over the configured
// duration and reported once it settles; without it the offset jumps and
// nothing is reported.
func (n *Navigator) ScrollToSection(target int, animate bool) {
	if !n.usable() {
		return
	}
	target = n.clamp(target)

	if target == n.state.CurrentSection && animate {
		return
	}

	n.cancelRun()
	n.state.CurrentSection = target

	if !animate {
		n.writeOffset(n.layout.offsetFor(target))
		n.syncPresentation()
		return
	}

	n.startRun(n.layout.offsetFor(target), true)
	n.syncPresentation()
}

// resettle animates back to the committed section after a provisional
// offset was shown. It does not report a section change.
func (n *Navigator) resettle() {
	target := n.layout.offsetFor(n.state.CurrentSection)
	if n.offset == target {
		return
	}
	n.cancelRun()
	n.startRun(target, false)
}

func (n *Navigator) startRun(target float64, emit bool) {
	n.gen++
	r := &run{
		gen:    n.gen,
		start:  n.offset,
		target: target,
		emit:   emit,
	}
	n.active = r
	n.state.IsAnimating = true
	r.handle = n.frames.RequestFrame(func(now time.Time) { n.step(r, now) })
}

// step advances r by one frame and schedules the next one.
func (n *Navigator) step(r *run, now time.Time) {
	if n.active != r || r.gen != n.gen {
		return
	}
	if !r.started {
		r.started = true
		r.startTime = now
	}

	p := 1.0
	if n.cfg.SnapDuration > 0 {
		p = float64(now.Sub(r.startTime)) / float64(n.cfg.SnapDuration)
		if p > 1 {
			p = 1
		}
	}

	if p >= 1 {
		n.active = nil
		n.state.IsAnimating = false
		n.writeOffset(r.target)
		n.updateParallax(1)
		n.syncPresentation()
		if r.emit {
			n.publishSectionChanged()
		}
		return
	}

	n.writeOffset(r.start + (r.target-r.start)*n.easing(p))
	n.updateParallax(p)
	r.handle = n.frames.RequestFrame(func(now time.Time) { n.step(r, now) })
}

// cancelRun stops the active run. Its pending frame is cancelled and, should
// the frame source still deliver it, the generation check drops it.
func (n *Navigator) cancelRun() {
	if n.active != nil {
		n.frames.CancelFrame(n.active.handle)
		n.active = nil
	}
	n.gen++
	n.state.IsAnimating = false
}

func (n *Navigator) publishSectionChanged() {
	if n.bus == nil {
		return
	}
	cur := n.state.CurrentSection
	n.bus.Publish(domain.SectionChangedEvent{
		Section:       cur,
		SectionID:     n.sections[cur].ID,
		TotalSections: n.total(),
	})
}

func (n *Navigator) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if last := n.total() - 1; i > last {
		return last
	}
	return i
}
