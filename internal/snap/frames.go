package snap

import (
	"time"

	"code.cloudfoundry.org/clock"
)

// FrameHandle identifies a requested frame callback.
type FrameHandle uint64

// FrameSource schedules callbacks once per display refresh. Callbacks run on
// the same goroutine that drives the navigator; now is the frame timestamp.
type FrameSource interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// immediateFrames runs every callback synchronously. It is used when no frame
// source is supplied, together with a zero duration so a run settles on its
// first frame.
type immediateFrames struct {
	clock clock.Clock
	next  FrameHandle
}

func (f *immediateFrames) RequestFrame(fn func(now time.Time)) FrameHandle {
	f.next++
	fn(f.clock.Now())
	return f.next
}

func (f *immediateFrames) CancelFrame(FrameHandle) {}
