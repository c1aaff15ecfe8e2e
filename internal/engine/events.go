package engine

import "fmt"

// Well-known event names raised by the screen layer.
const (
	EventConfirm = "ui/confirm"
	EventCancel  = "ui/cancel"
)

// EventRegistry hands out event handles for names on first use.
// Names are stable for the lifetime of the registry; anonymous events
// created with New have no name.
type EventRegistry struct {
	gen    EventGenerator
	byName map[string]EventHandle
	names  map[EventHandle]string
}

// NewEventRegistry creates an empty registry.
func NewEventRegistry() *EventRegistry {
	return &EventRegistry{
		byName: make(map[string]EventHandle),
		names:  make(map[EventHandle]string),
	}
}

// Named returns the handle for name, allocating it if needed.
func (r *EventRegistry) Named(name string) EventHandle {
	if h, ok := r.byName[name]; ok {
		return h
	}
	h := r.gen.Next()
	r.byName[name] = h
	r.names[h] = name
	return h
}

// Lookup returns the handle for name without allocating.
func (r *EventRegistry) Lookup(name string) (EventHandle, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// New allocates an anonymous event, e.g. a per-run completion signal.
func (r *EventRegistry) New() EventHandle {
	return r.gen.Next()
}

// Name returns a printable name for h. Anonymous events render as "event#N".
func (r *EventRegistry) Name(h EventHandle) string {
	if name, ok := r.names[h]; ok {
		return name
	}
	return fmt.Sprintf("event%s", h)
}
