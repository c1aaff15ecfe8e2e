package engine

// Poll is the outcome of advancing a computation by one step.
type Poll int

const (
	Pending Poll = iota // Suspended; waits for a subscribed event
	Ready               // Finished; the script is gone
)

func (p Poll) String() string {
	switch p {
	case Pending:
		return "Pending"
	case Ready:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Waker is the notification object handed to every step.
// The runtime never needs to be woken from the outside: each resumption is a
// direct RaiseEvent or StartScript call on the driving goroutine.
type Waker interface {
	Wake()
}

type noopWaker struct{}

func (noopWaker) Wake() {}

// Computation is the suspended body of a running script.
type Computation interface {
	// Poll runs the body until it suspends (Pending) or returns (Ready).
	// Polling a computation after it reported Ready is a programming error.
	Poll(w Waker) Poll
}

// Releaser is implemented by computations that hold resources beyond their
// own memory. DefaultRuntime.Close calls Release on every live computation.
type Releaser interface {
	Release()
}

// Script is a unit of suspendable game logic. Start is called once per run
// with a freshly allocated handle and a copy of the game context.
type Script interface {
	Start(h ScriptHandle, ctx GameContext) Computation
}

// Named is implemented by scripts that can report a name for logs.
type Named interface {
	ScriptName() string
}

// ScriptName returns the name of s, or its dynamic type when it has none.
func ScriptName(s Script) string {
	if n, ok := s.(Named); ok {
		return n.ScriptName()
	}
	return typeName(s)
}

// Func is a native script: a Go function run as a coroutine.
type Func func(co *Co)

// Start implements Script.
func (f Func) Start(h ScriptHandle, ctx GameContext) Computation {
	return newCoroutine(h, ctx, f)
}

// NamedFunc is a Func carrying the resource path it was registered under.
type NamedFunc struct {
	Name string
	Fn   Func
}

// Start implements Script.
func (f NamedFunc) Start(h ScriptHandle, ctx GameContext) Computation {
	return newCoroutine(h, ctx, f.Fn)
}

// ScriptName implements Named.
func (f NamedFunc) ScriptName() string {
	return f.Name
}

// ComputationFunc adapts a plain function to Computation.
// Handy for hand-written state machines.
type ComputationFunc func(w Waker) Poll

// Poll implements Computation.
func (f ComputationFunc) Poll(w Waker) Poll {
	return f(w)
}
