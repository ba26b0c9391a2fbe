package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"folio/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDocDiscovered       = domain.EventDocDiscovered
	EventDocsDiscoveredBatch = domain.EventDocsDiscoveredBatch
	EventDocOpened           = domain.EventDocOpened
	EventDocClosed           = domain.EventDocClosed
	EventPaginated           = domain.EventPaginated
	EventPageTurned          = domain.EventPageTurned
	EventError               = domain.EventError
	EventScanStarted         = domain.EventScanStarted
	EventScanCompleted       = domain.EventScanCompleted
	EventScanRequested       = domain.EventScanRequested
	EventConfigLoaded        = domain.EventConfigLoaded
	EventConfigSaved         = domain.EventConfigSaved
	EventConfigChanged       = domain.EventConfigChanged
)

// Re-export domain event types
type DocDiscoveredEvent = domain.DocDiscoveredEvent
type DocsDiscoveredBatchEvent = domain.DocsDiscoveredBatchEvent
type DocOpenedEvent = domain.DocOpenedEvent
type DocClosedEvent = domain.DocClosedEvent
type PaginatedEvent = domain.PaginatedEvent
type PageTurnedEvent = domain.PageTurnedEvent
type ErrorEvent = domain.ErrorEvent
type ScanStartedEvent = domain.ScanStartedEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type ScanRequestedEvent = domain.ScanRequestedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// subscriber pairs a handler with an id so it can be removed later;
// function values themselves are not comparable.
type subscriber struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	log       zerolog.Logger
	handlers  map[EventType][]subscriber
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New(log zerolog.Logger) EventBus {
	b := &bus{
		log:       log,
		handlers:  make(map[EventType][]subscriber),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventPageTurned, EventDocDiscovered:
		// Too frequent to log
	default:
		b.log.Debug().Str("event", string(event.Type())).Msg("publishing event")
	}

	select {
	case b.eventChan <- event:
		// Event sent successfully
	default:
		// Channel full, log and drop
		b.log.Warn().Str("event", string(event.Type())).Msg("event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	// Return unsubscribe function
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Get handlers for this event type
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Make a copy to avoid holding lock during handler execution
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			// Call each handler
			for _, handler := range handlersCopy {
				// Call handler in a goroutine to avoid blocking
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.log.Error().
								Str("event", string(eventType)).
								Interface("panic", r).
								Bytes("stack", debug.Stack()).
								Msg("event handler panic")
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}
