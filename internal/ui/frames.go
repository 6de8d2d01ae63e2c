package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sectionsnap/internal/snap"
)

// frameMsg carries the timestamp of one display refresh.
type frameMsg time.Time

// teaFrames is a snap.FrameSource driven by bubbletea ticks. Requested
// callbacks are collected and run together when the next frameMsg arrives,
// on the Update goroutine.
type teaFrames struct {
	interval time.Duration
	next     snap.FrameHandle
	pending  map[snap.FrameHandle]func(time.Time)
	order    []snap.FrameHandle
	ticking  bool
}

func newTeaFrames(interval time.Duration) *teaFrames {
	return &teaFrames{
		interval: interval,
		pending:  make(map[snap.FrameHandle]func(time.Time)),
	}
}

func (f *teaFrames) RequestFrame(fn func(now time.Time)) snap.FrameHandle {
	f.next++
	f.pending[f.next] = fn
	f.order = append(f.order, f.next)
	return f.next
}

func (f *teaFrames) CancelFrame(h snap.FrameHandle) {
	delete(f.pending, h)
}

// Pending reports whether any callback waits for a frame.
func (f *teaFrames) Pending() bool {
	return len(f.pending) > 0
}

// Tick returns the command that delivers the next frame, or nil when no
// callback is waiting or a tick is already in flight.
func (f *teaFrames) Tick() tea.Cmd {
	if f.ticking || !f.Pending() {
		return nil
	}
	f.ticking = true
	return tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run invokes the callbacks requested before this frame. Callbacks requested
// while running wait for the following frame.
func (f *teaFrames) Run(now time.Time) {
	f.ticking = false
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
