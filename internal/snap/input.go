package snap

import (
	"math"
	"time"
)

// Event is an input event understood by Navigator.Handle.
type Event interface {
	isEvent()
}

// WheelEvent is one wheel notch or trackpad delta. Positive DeltaY scrolls down.
type WheelEvent struct {
	DeltaY float64
}

// TouchStartEvent begins a drag at vertical position Y.
type TouchStartEvent struct {
	Y float64
}

// TouchMoveEvent continues a drag.
type TouchMoveEvent struct {
	Y float64
}

// TouchEndEvent finishes a drag.
type TouchEndEvent struct{}

// KeyEvent is a navigation key press.
type KeyEvent struct {
	Key Key
}

// ResizeEvent reports a new viewport height.
type ResizeEvent struct {
	Height float64
}

func (WheelEvent) isEvent()      {}
func (TouchStartEvent) isEvent() {}
func (TouchMoveEvent) isEvent()  {}
func (TouchEndEvent) isEvent()   {}
func (KeyEvent) isEvent()        {}
func (ResizeEvent) isEvent()     {}

// Key names a navigation key.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyPageDown  Key = "PageDown"
	KeyPageUp    Key = "PageUp"
	KeySpace     Key = "Space"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeyEscape    Key = "Escape"
)

const (
	// SwipeVelocity is the touch speed, in units per millisecond, above which
	// a drag always moves one section.
	SwipeVelocity = 0.5
	// SwipeDistance is the drag length, as a fraction of the viewport height,
	// above which a drag always moves one section.
	SwipeDistance = 0.2
)

// wheelDecay scales wheel input by how soon it follows the previous event.
func wheelDecay(gap time.Duration) float64 {
	switch {
	case gap > 100*time.Millisecond:
		return 1
	case gap > 50*time.Millisecond:
		return 0.5
	default:
		return 0.2
	}
}

// touchState tracks one drag gesture.
type touchState struct {
	active    bool
	startY    float64
	startTime time.Time
	delta     float64
}

// Handle feeds one input event to the navigator. It reports whether the
// event was consumed; callers suppress their own handling of consumed events.
func (n *Navigator) Handle(ev Event) bool {
	if !n.usable() {
		return false
	}
	switch ev := ev.(type) {
	case WheelEvent:
		return n.handleWheel(ev)
	case TouchStartEvent:
		return n.handleTouchStart(ev)
	case TouchMoveEvent:
		return n.handleTouchMove(ev)
	case TouchEndEvent:
		return n.handleTouchEnd()
	case KeyEvent:
		return n.handleKey(ev)
	case ResizeEvent:
		n.Resize(ev.Height)
		return true
	}
	return false
}

func (n *Navigator) acceptsInput() bool {
	return n.state.IsEnabled && !n.state.IsAnimating
}

func (n *Navigator) handleWheel(ev WheelEvent) bool {
	if !n.acceptsInput() {
		return false
	}

	now := n.clock.Now()
	sensitivity := n.cfg.WheelSensitivity * wheelDecay(now.Sub(n.lastWheel))
	n.state.PendingDelta += ev.DeltaY * sensitivity

	if math.Abs(n.state.PendingDelta) > n.layout.height*n.cfg.SnapThreshold {
		direction := -1
		if ev.DeltaY > 0 {
			direction = 1
		}
		n.state.PendingDelta = 0
		n.ScrollToSection(n.state.CurrentSection+direction, true)
	}

	n.lastWheel = now
	return true
}

func (n *Navigator) handleTouchStart(ev TouchStartEvent) bool {
	if !n.acceptsInput() {
		return false
	}
	n.touch = touchState{
		active:    true,
		startY:    ev.Y,
		startTime: n.clock.Now(),
	}
	return true
}

func (n *Navigator) handleTouchMove(ev TouchMoveEvent) bool {
	if !n.acceptsInput() || !n.touch.active {
		return false
	}
	n.touch.delta = n.touch.startY - ev.Y
	provisional := n.layout.offsetFor(n.state.CurrentSection) + n.touch.delta*n.cfg.TouchSensitivity
	n.writeOffset(provisional)
	return true
}

func (n *Navigator) handleTouchEnd() bool {
	if !n.acceptsInput() || !n.touch.active {
		return false
	}
	t := n.touch
	n.touch = touchState{}

	distance := math.Abs(t.delta)
	elapsedMs := float64(n.clock.Since(t.startTime)) / float64(time.Millisecond)
	velocity := distance / elapsedMs

	if velocity > SwipeVelocity || distance > n.layout.height*SwipeDistance {
		direction := -1
		if t.delta > 0 {
			direction = 1
		}
		if target := n.clamp(n.state.CurrentSection + direction); target != n.state.CurrentSection {
			n.ScrollToSection(target, true)
			return true
		}
	}

	n.resettle()
	return true
}

func (n *Navigator) handleKey(ev KeyEvent) bool {
	if ev.Key == KeyEscape {
		n.setEnabled(!n.state.IsEnabled)
		return true
	}
	if !n.acceptsInput() {
		return false
	}

	switch ev.Key {
	case KeyArrowDown, KeyPageDown, KeySpace:
		n.ScrollToSection(n.state.CurrentSection+1, true)
	case KeyArrowUp, KeyPageUp:
		n.ScrollToSection(n.state.CurrentSection-1, true)
	case KeyHome:
		n.ScrollToSection(0, true)
	case KeyEnd:
		n.ScrollToSection(n.total()-1, true)
	default:
		return false
	}
	return true
}
