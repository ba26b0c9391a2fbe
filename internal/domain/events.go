package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocDiscovered       EventType = "DocDiscovered"
	EventDocsDiscoveredBatch EventType = "DocsDiscoveredBatch"
	EventDocOpened           EventType = "DocOpened"
	EventDocClosed           EventType = "DocClosed"
	EventPaginated           EventType = "Paginated"
	EventPageTurned          EventType = "PageTurned"
	EventError               EventType = "Error"
	EventScanStarted         EventType = "ScanStarted"
	EventScanCompleted       EventType = "ScanCompleted"
	EventScanRequested       EventType = "ScanRequested"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
	EventConfigChanged       EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocDiscoveredEvent is emitted when a readable document is found
type DocDiscoveredEvent struct {
	Doc Document
}

func (e DocDiscoveredEvent) Type() EventType { return EventDocDiscovered }

// DocsDiscoveredBatchEvent carries several discoveries at once to keep
// bus traffic low during large scans
type DocsDiscoveredBatchEvent struct {
	Docs []Document
}

func (e DocsDiscoveredBatchEvent) Type() EventType { return EventDocsDiscoveredBatch }

// DocOpenedEvent is emitted when a document is opened in the reader
type DocOpenedEvent struct {
	Path string
}

func (e DocOpenedEvent) Type() EventType { return EventDocOpened }

// DocClosedEvent is emitted when the reader returns to the library
type DocClosedEvent struct {
	Path string
}

func (e DocClosedEvent) Type() EventType { return EventDocClosed }

// PaginatedEvent is emitted when pagination finishes and the true page
// count is known
type PaginatedEvent struct {
	Path       string
	TotalPages int
}

func (e PaginatedEvent) Type() EventType { return EventPaginated }

// PageTurnedEvent is emitted after a page-turn intent has been applied
type PageTurnedEvent struct {
	Path     string
	FromPage int
	ToPage   int
}

func (e PageTurnedEvent) Type() EventType { return EventPageTurned }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ScanStartedEvent is emitted when library scanning begins
type ScanStartedEvent struct {
	Paths []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when library scanning completes
type ScanCompletedEvent struct {
	DocsFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Paths []string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	LibraryDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	LibraryDir string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
