// Package engine implements the script runtime: a single-threaded,
// cooperative executor that suspends game scripts until named events are
// raised and resumes each of them exactly once per subscription.
package engine

import "github.com/vovakirdan/tui-overworld/internal/handle"

// EventTag marks event identifiers.
type EventTag struct{}

// ScriptTag marks script identifiers.
type ScriptTag struct{}

type (
	EventHandle     = handle.Handle[EventTag]
	EventGenerator  = handle.Generator[EventTag]
	ScriptHandle    = handle.Handle[ScriptTag]
	ScriptGenerator = handle.Generator[ScriptTag]
)
