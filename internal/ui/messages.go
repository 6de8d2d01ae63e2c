package ui

import (
	"sectionsnap/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// DocumentChangedMsg asks the model to reload the document from disk
type DocumentChangedMsg struct {
	Path string
}

// clearStatusMsg clears the footer status message
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
