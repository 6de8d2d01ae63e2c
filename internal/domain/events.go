package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSectionChanged     EventType = "SectionChanged"
	EventNavigatorToggled   EventType = "NavigatorToggled"
	EventNavigatorDestroyed EventType = "NavigatorDestroyed"
	EventDocumentLoaded     EventType = "DocumentLoaded"
	EventDocumentReloaded   EventType = "DocumentReloaded"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SectionChangedEvent is emitted once per completed section transition
type SectionChangedEvent struct {
	Section       int
	SectionID     string // empty when the section has no identifier
	TotalSections int
}

func (e SectionChangedEvent) Type() EventType { return EventSectionChanged }

// NavigatorToggledEvent is emitted when input handling is enabled or disabled
type NavigatorToggledEvent struct {
	Enabled bool
}

func (e NavigatorToggledEvent) Type() EventType { return EventNavigatorToggled }

// NavigatorDestroyedEvent is emitted after a navigator restored the original layout
type NavigatorDestroyedEvent struct{}

func (e NavigatorDestroyedEvent) Type() EventType { return EventNavigatorDestroyed }

// DocumentLoadedEvent is emitted when a document has been parsed into sections
type DocumentLoadedEvent struct {
	Path     string
	Sections int
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// DocumentReloadedEvent is emitted when the watcher picked up a change on disk
type DocumentReloadedEvent struct {
	Path string
}

func (e DocumentReloadedEvent) Type() EventType { return EventDocumentReloaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
