package analytics

import (
	"context"
	"log"

	"sectionsnap/internal/eventbus"
)

// Recorder stores every SectionChangedEvent published on a bus.
type Recorder struct {
	store       *Store
	document    string
	unsubscribe func()
}

// NewRecorder subscribes store to section changes on bus. Views are filed
// under document.
func NewRecorder(bus eventbus.EventBus, store *Store, document string) *Recorder {
	r := &Recorder{store: store, document: document}
	r.unsubscribe = bus.Subscribe(eventbus.EventSectionChanged, r.handle)
	return r
}

// Close stops recording.
func (r *Recorder) Close() {
	r.unsubscribe()
}

func (r *Recorder) handle(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.SectionChangedEvent)
	if !ok {
		return
	}
	if err := r.store.Record(context.Background(), r.document, ev); err != nil {
		log.Printf("analytics: %v", err)
	}
}
