package engine

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// Runtime is the capability scripts and screens use to coordinate through
// events.
type Runtime interface {
	// Subscribe queues script to be resumed the next time event is raised.
	// Subscriptions are one-shot and are not deduplicated.
	Subscribe(event EventHandle, script ScriptHandle)

	// RaiseEvent resumes every script subscribed to event, in subscription
	// order. Raising an event nobody waits for does nothing.
	RaiseEvent(event EventHandle)

	// WakeEvent returns the event that most recently resumed script.
	// The boolean is false until the script is first woken by an event.
	WakeEvent(script ScriptHandle) (EventHandle, bool)

	// StartScript registers script under a new handle and runs it until it
	// first suspends or completes.
	StartScript(ctx GameContext, script Script) ScriptHandle

	// Alive reports whether script is still registered (not yet completed).
	Alive(script ScriptHandle) bool
}

// Observer receives lifecycle notifications from DefaultRuntime.
// Callbacks run synchronously on the driving goroutine.
type Observer interface {
	ScriptStarted(h ScriptHandle, name string)
	ScriptCompleted(h ScriptHandle)
	EventRaised(event EventHandle, subscribers int)
}

type scriptState struct {
	name        string
	wakeEvent   EventHandle
	hasWake     bool
	running     bool
	computation Computation
}

// DefaultRuntime is the single-threaded executor.
// It must only be driven from one goroutine.
type DefaultRuntime struct {
	subscribers map[EventHandle][]ScriptHandle
	scripts     map[ScriptHandle]*scriptState
	gen         ScriptGenerator
	waker       noopWaker
	logger      *log.Logger
	observer    Observer
}

// NewRuntime creates an empty runtime. logger may be nil.
func NewRuntime(logger *log.Logger) *DefaultRuntime {
	return &DefaultRuntime{
		subscribers: make(map[EventHandle][]ScriptHandle),
		scripts:     make(map[ScriptHandle]*scriptState),
		logger:      logger,
	}
}

// SetObserver installs an optional lifecycle observer.
func (r *DefaultRuntime) SetObserver(o Observer) {
	r.observer = o
}

// Subscribe implements Runtime.
func (r *DefaultRuntime) Subscribe(event EventHandle, script ScriptHandle) {
	if _, ok := r.scripts[script]; !ok {
		panic(fmt.Sprintf("engine: subscribe of unregistered script %v", script))
	}
	r.subscribers[event] = append(r.subscribers[event], script)
}

// RaiseEvent implements Runtime.
func (r *DefaultRuntime) RaiseEvent(event EventHandle) {
	// Detach the list first: scripts woken below may subscribe to the same
	// event again, and those entries belong to the next raise.
	list, ok := r.subscribers[event]
	if !ok {
		return
	}
	delete(r.subscribers, event)

	r.debug("event raised", "event", event, "subscribers", len(list))
	if r.observer != nil {
		r.observer.EventRaised(event, len(list))
	}

	for _, script := range list {
		// An earlier entry of this same list may have run the script to
		// completion (duplicate subscription).
		if _, live := r.scripts[script]; !live {
			continue
		}
		r.resume(script, event, true)
	}
}

// WakeEvent implements Runtime.
func (r *DefaultRuntime) WakeEvent(script ScriptHandle) (EventHandle, bool) {
	state := r.mustState(script)
	return state.wakeEvent, state.hasWake
}

// StartScript implements Runtime.
func (r *DefaultRuntime) StartScript(ctx GameContext, script Script) ScriptHandle {
	h := r.gen.Next()
	name := ScriptName(script)
	computation := script.Start(h, ctx)
	r.scripts[h] = &scriptState{name: name, computation: computation}

	r.debug("script started", "script", h, "name", name)
	if r.observer != nil {
		r.observer.ScriptStarted(h, name)
	}

	r.resume(h, EventHandle{}, false)
	return h
}

// Alive implements Runtime.
func (r *DefaultRuntime) Alive(script ScriptHandle) bool {
	_, ok := r.scripts[script]
	return ok
}

// Live returns the number of registered scripts.
func (r *DefaultRuntime) Live() int {
	return len(r.scripts)
}

// Scripts returns the handles of all registered scripts in issue order.
func (r *DefaultRuntime) Scripts() []ScriptHandle {
	hs := make([]ScriptHandle, 0, len(r.scripts))
	for h := range r.scripts {
		hs = append(hs, h)
	}
	slices.SortFunc(hs, ScriptHandle.Compare)
	return hs
}

// Subscribers returns a copy of the pending subscriber list for event.
// The boolean is false when no list exists.
func (r *DefaultRuntime) Subscribers(event EventHandle) ([]ScriptHandle, bool) {
	list, ok := r.subscribers[event]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// PendingEvents returns the number of events with at least one subscriber list.
func (r *DefaultRuntime) PendingEvents() int {
	return len(r.subscribers)
}

// Close releases every live script without resuming it and drops all
// subscriptions. Scripts are not reported as completed. The runtime stays
// usable; new scripts may be started afterwards.
func (r *DefaultRuntime) Close() {
	hs := r.Scripts()
	for _, h := range hs {
		if r.scripts[h].running {
			panic(fmt.Sprintf("engine: close while script %v is running", h))
		}
	}
	for _, h := range hs {
		state := r.scripts[h]
		delete(r.scripts, h)
		if rel, ok := state.computation.(Releaser); ok {
			rel.Release()
		}
		r.debug("script released", "script", h, "name", state.name)
	}
	clear(r.subscribers)
}

// resume advances one script by exactly one step.
func (r *DefaultRuntime) resume(script ScriptHandle, wake EventHandle, hasWake bool) {
	state := r.mustState(script)
	if state.running {
		panic(fmt.Sprintf("engine: script %v resumed while running", script))
	}
	state.wakeEvent, state.hasWake = wake, hasWake

	state.running = true
	poll := state.computation.Poll(r.waker)
	state.running = false

	if poll == Ready {
		r.remove(script)
	}
}

// remove drops a completed script and every subscription it left behind.
func (r *DefaultRuntime) remove(script ScriptHandle) {
	delete(r.scripts, script)
	for event, list := range r.subscribers {
		pruned := slices.DeleteFunc(list, func(h ScriptHandle) bool { return h == script })
		if len(pruned) == 0 {
			delete(r.subscribers, event)
			continue
		}
		r.subscribers[event] = pruned
	}

	r.debug("script completed", "script", script)
	if r.observer != nil {
		r.observer.ScriptCompleted(script)
	}
}

func (r *DefaultRuntime) mustState(script ScriptHandle) *scriptState {
	state, ok := r.scripts[script]
	if !ok {
		panic(fmt.Sprintf("engine: unknown script %v", script))
	}
	return state
}

func (r *DefaultRuntime) debug(msg string, keyvals ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, keyvals...)
	}
}
