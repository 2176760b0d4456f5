package app

import (
	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// OverlayState is the state of the random-quote overlay.
type OverlayState string

// Overlay states. There are no others.
const (
	OverlayClosed OverlayState = "closed"
	OverlayOpen   OverlayState = "open"
)

// DismissTrigger is a user gesture that closes the overlay.
type DismissTrigger string

// Dismiss triggers. All of them lead to the same closed state.
const (
	TriggerCloseButton  DismissTrigger = "close-button"
	TriggerOutsideClick DismissTrigger = "outside-click"
	TriggerCancelKey    DismissTrigger = "cancel-key"
)

// DismissTriggers lists every trigger registered when the overlay opens.
var DismissTriggers = []DismissTrigger{TriggerCloseButton, TriggerOutsideClick, TriggerCancelKey}

// ParseDismissTrigger validates a trigger name.
func ParseDismissTrigger(s string) (DismissTrigger, error) {
	for _, t := range DismissTriggers {
		if string(t) == s {
			return t, nil
		}
	}

	return "", domain.NewValidationErrorWithValue("trigger",
		"must be one of: close-button outside-click cancel-key", s)
}

// OverlaySnapshot is a copy of the overlay state for rendering.
type OverlaySnapshot struct {
	State     OverlayState
	QuoteID   int
	Listeners int
}

// Overlay is the open/closed state machine of the random-quote
// presentation. Opening registers one dismiss listener per trigger; any of
// them closes the overlay and unregisters all three. It is not safe for
// concurrent use.
type Overlay struct {
	state     OverlayState
	quoteID   int
	listeners map[DismissTrigger]func()
}

// NewOverlay returns a closed overlay with no listeners.
func NewOverlay() *Overlay {
	return &Overlay{
		state:     OverlayClosed,
		listeners: make(map[DismissTrigger]func(), len(DismissTriggers)),
	}
}

// Open shows quoteID. Opening an open overlay replaces the quote and
// leaves exactly one listener per trigger.
func (o *Overlay) Open(quoteID int) {
	o.state = OverlayOpen
	o.quoteID = quoteID

	for _, t := range DismissTriggers {
		o.listeners[t] = o.close
	}
}

// Dismiss fires the listener for trigger. It reports false, and does
// nothing, when no listener is registered, which is always the case once
// the overlay is closed.
func (o *Overlay) Dismiss(trigger DismissTrigger) bool {
	fn, ok := o.listeners[trigger]
	if !ok {
		return false
	}

	fn()

	return true
}

// Listeners returns the number of registered dismiss listeners.
func (o *Overlay) Listeners() int {
	return len(o.listeners)
}

// State returns the current state.
func (o *Overlay) State() OverlayState {
	return o.state
}

// Snapshot copies the overlay state.
func (o *Overlay) Snapshot() OverlaySnapshot {
	return OverlaySnapshot{
		State:     o.state,
		QuoteID:   o.quoteID,
		Listeners: len(o.listeners),
	}
}

func (o *Overlay) close() {
	o.state = OverlayClosed
	o.quoteID = 0
	clear(o.listeners)
}
