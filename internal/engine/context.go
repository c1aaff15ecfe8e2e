package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-overworld/internal/core"
	"github.com/vovakirdan/tui-overworld/internal/resources"
)

// Screen is the active top-level screen (normally the overworld).
type Screen interface {
	// Update advances the screen by one frame.
	Update(ctx GameContext, dt time.Duration)

	// HandleAction reacts to a translated input action.
	HandleAction(ctx GameContext, action core.Action)

	// Render draws the screen into dst. dst is cleared beforehand.
	Render(ctx GameContext, dst *core.Screen)
}

// GameContext bundles the shared handles every script and screen works with.
// It is passed by value; copies share the same runtime, resources and screen.
type GameContext struct {
	Resources *resources.Storage
	Runtime   Runtime
	Screen    Screen
	Events    *EventRegistry
	Logger    *log.Logger
}

var discard = log.New(io.Discard)

// Log returns the session logger, or a logger that drops everything when the
// context has none.
func (c GameContext) Log() *log.Logger {
	if c.Logger == nil {
		return discard
	}
	return c.Logger
}

// Event returns the handle for a named event.
func (c GameContext) Event(name string) EventHandle {
	return c.Events.Named(name)
}

// Raise raises a named event. A name nobody has asked a handle for cannot
// have subscribers, so it is not allocated.
func (c GameContext) Raise(name string) {
	if h, ok := c.Events.Lookup(name); ok {
		c.Runtime.RaiseEvent(h)
	}
}

// Start starts script with this context.
func (c GameContext) Start(script Script) ScriptHandle {
	return c.Runtime.StartScript(c, script)
}

// StartNamed looks up a script resource by path and starts it.
func (c GameContext) StartNamed(path string) (ScriptHandle, error) {
	script, err := resources.Get[Script](c.Resources, path)
	if err != nil {
		return ScriptHandle{}, err
	}
	return c.Start(script), nil
}
