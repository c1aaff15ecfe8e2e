// Package dialog implements dialogue sequences: composite scripts that show a
// fixed list of frames one after another, each waiting for an event (by
// default the confirm key) before the next one appears.
package dialog

import (
	"github.com/vovakirdan/tui-overworld/internal/engine"
)

// TextBox is implemented by screens that can display dialogue.
type TextBox interface {
	ShowText(speaker, text string)
	ClearText()
}

// Frame is one page of a dialogue.
type Frame struct {
	Speaker string
	Text    string
	Await   string // Event that advances past this frame; defaults to Dialog.Advance
	Raise   string // Event raised when the frame is shown
}

// Dialog is a dialogue sequence. A Dialog is a template: every Start runs an
// independent copy, so one Dialog resource can be shown any number of times.
type Dialog struct {
	Name    string
	Advance string
	Frames  []Frame
}

// DoneEvent is the named event raised whenever a run of the dialog finishes.
func DoneEvent(name string) string {
	return "dialog/" + name + "/done"
}

// ScriptName implements engine.Named.
func (d *Dialog) ScriptName() string {
	return "dialog:" + d.Name
}

// Start implements engine.Script.
func (d *Dialog) Start(h engine.ScriptHandle, ctx engine.GameContext) engine.Computation {
	return &run{dialog: d, handle: h, ctx: ctx}
}

func (d *Dialog) advance(f Frame) string {
	if f.Await != "" {
		return f.Await
	}
	if d.Advance != "" {
		return d.Advance
	}
	return engine.EventConfirm
}

// instance wraps a Dialog with a private completion event for Run.
type instance struct {
	*Dialog
	done engine.EventHandle
}

func (i instance) Start(h engine.ScriptHandle, ctx engine.GameContext) engine.Computation {
	return &run{dialog: i.Dialog, handle: h, ctx: ctx, done: &i.done}
}

// run is the state machine of one dialogue: next is the frame to show on the
// following step.
type run struct {
	dialog *Dialog
	handle engine.ScriptHandle
	ctx    engine.GameContext
	next   int
	done   *engine.EventHandle
}

func (r *run) Poll(engine.Waker) engine.Poll {
	box, _ := r.ctx.Screen.(TextBox)

	if r.next >= len(r.dialog.Frames) {
		if box != nil {
			box.ClearText()
		}
		if r.dialog.Name != "" {
			r.ctx.Raise(DoneEvent(r.dialog.Name))
		}
		if r.done != nil {
			r.ctx.Runtime.RaiseEvent(*r.done)
		}
		return engine.Ready
	}

	frame := r.dialog.Frames[r.next]
	r.next++
	if box != nil {
		box.ShowText(frame.Speaker, frame.Text)
	}
	if frame.Raise != "" {
		r.ctx.Raise(frame.Raise)
	}
	r.ctx.Runtime.Subscribe(r.ctx.Event(r.dialog.advance(frame)), r.handle)
	return engine.Pending
}

// Run shows d from inside a native script and returns once it has finished.
func Run(co *engine.Co, d *Dialog) {
	ctx := co.Context()
	done := ctx.Events.New()
	h := ctx.Start(instance{Dialog: d, done: done})
	if ctx.Runtime.Alive(h) {
		co.Await(done)
	}
}
