package ui

import (
	"folio/internal/eventbus"
	"folio/internal/turn"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// turnIntentMsg carries a page-turn intent out of the controller
type turnIntentMsg struct {
	intent turn.Intent
}

// feedbackMsg carries a turn-progress indicator update
type feedbackMsg struct {
	feedback turn.Feedback
}

// helpPagerMsg contains the result of the help pager
type helpPagerMsg struct {
	err error
}
