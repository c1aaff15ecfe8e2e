package engine

import (
	"errors"
	"fmt"
	"iter"
)

// Co is the handle a native script body uses to talk to the runtime.
type Co struct {
	handle ScriptHandle
	ctx    GameContext
	yield  func(struct{}) bool
}

// Handle returns the script's own handle.
func (co *Co) Handle() ScriptHandle {
	return co.handle
}

// Context returns the game context the script was started with.
func (co *Co) Context() GameContext {
	return co.ctx
}

// Suspend hands control back to the runtime. The script continues only when
// an event it is subscribed to is raised. If the runtime is closed instead,
// Suspend does not return: the body unwinds, running its deferred calls.
func (co *Co) Suspend() {
	if !co.yield(struct{}{}) {
		panic(errReleased)
	}
}

// Await subscribes the script to event, suspends, and returns the event that
// woke it up.
func (co *Co) Await(event EventHandle) EventHandle {
	co.ctx.Runtime.Subscribe(event, co.handle)
	co.Suspend()
	wake, _ := co.ctx.Runtime.WakeEvent(co.handle)
	return wake
}

// AwaitNamed is Await for an event looked up by name.
func (co *Co) AwaitNamed(name string) EventHandle {
	return co.Await(co.ctx.Events.Named(name))
}

// errReleased unwinds a body whose coroutine was released mid-suspension.
var errReleased = errors.New("engine: coroutine released")

// coroutine steps a Func body with iter.Pull. next runs the body on the
// caller's behalf until its next yield and returns; nothing runs in between.
type coroutine struct {
	next func() (struct{}, bool)
	stop func()
	done bool
}

func newCoroutine(h ScriptHandle, ctx GameContext, body Func) *coroutine {
	seq := func(yield func(struct{}) bool) {
		defer func() {
			if r := recover(); r != nil && r != errReleased {
				panic(r)
			}
		}()
		body(&Co{handle: h, ctx: ctx, yield: yield})
	}
	next, stop := iter.Pull(iter.Seq[struct{}](seq))
	return &coroutine{next: next, stop: stop}
}

func (c *coroutine) Poll(Waker) Poll {
	if c.done {
		panic("engine: poll of completed coroutine")
	}
	if _, ok := c.next(); ok {
		return Pending
	}
	c.done = true
	c.stop()
	return Ready
}

// Release stops a suspended body so its goroutine exits.
func (c *coroutine) Release() {
	if c.done {
		return
	}
	c.done = true
	c.stop()
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
