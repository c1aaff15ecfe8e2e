package scripts

import (
	"github.com/vovakirdan/tui-overworld/internal/dialog"
	"github.com/vovakirdan/tui-overworld/internal/engine"
	"github.com/vovakirdan/tui-overworld/internal/overworld"
	"github.com/vovakirdan/tui-overworld/internal/resources"
)

// Home room script paths and the events they use.
const (
	HomeInit = "overworld/rooms/home/init"

	EventHomeBed          = "home/bed"
	EventHomeDoor         = "home/door"
	EventHomeDoorUnlocked = "home/door-unlocked"
)

func init() {
	Register(HomeInit, homeInit)
}

// roomScreen is the part of the overworld screen the home script drives.
type roomScreen interface {
	PreviousRoom() string
	UnlockExit(target string)
}

// homeInit greets the player on a new game, then runs the lost-keys errand:
// try the door, search the bed, and the door to the hallway opens.
func homeInit(co *engine.Co) {
	ctx := co.Context()
	screen, ok := ctx.Screen.(roomScreen)
	if !ok || screen.PreviousRoom() != overworld.FromStart {
		return
	}

	if !play(co, "home/wake-up") {
		return
	}

	co.AwaitNamed(EventHomeDoor)
	if !play(co, "home/keys") {
		return
	}

	co.AwaitNamed(EventHomeBed)
	if !play(co, "home/found-keys") {
		return
	}

	screen.UnlockExit("hallway")
	ctx.Log().Info("hallway door unlocked")
	ctx.Raise(EventHomeDoorUnlocked)
}

// play runs the dialog resource name and waits for it to finish.
func play(co *engine.Co, name string) bool {
	ctx := co.Context()
	d, err := resources.Get[*dialog.Dialog](ctx.Resources, name)
	if err != nil {
		ctx.Log().Error("dialog missing", "dialog", name, "error", err)
		return false
	}
	dialog.Run(co, d)
	return true
}
