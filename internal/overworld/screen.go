package overworld

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/tui-overworld/internal/core"
	"github.com/vovakirdan/tui-overworld/internal/engine"
	"github.com/vovakirdan/tui-overworld/internal/resources"
)

// EnterEvent is the named event raised after a room becomes active.
func EnterEvent(room string) string {
	return "room/" + room + "/enter"
}

const textBoxHeight = 5

type textState struct {
	speaker string
	text    string
}

// Screen is the overworld screen. It implements engine.Screen and
// dialog.TextBox.
type Screen struct {
	cfg      PlayerConfig
	room     *Room
	previous string
	text     *textState
	unlocked map[string]bool
}

// NewScreen creates a screen with no active room.
func NewScreen(cfg PlayerConfig) *Screen {
	return &Screen{cfg: cfg, unlocked: make(map[string]bool)}
}

// Room returns the active room, or nil before the first LoadRoom.
func (s *Screen) Room() *Room {
	return s.room
}

// PreviousRoom returns the origin the active room was entered from
// (FromStart, FromSave or a room name).
func (s *Screen) PreviousRoom() string {
	return s.previous
}

// LoadRoom makes the named room active, starts its init script and raises
// its enter event.
func (s *Screen) LoadRoom(ctx engine.GameContext, name, from string) error {
	tmpl, err := resources.Get[RoomTemplate](ctx.Resources, name)
	if err != nil {
		return err
	}
	// Resolve everything before switching, so a failed load keeps the
	// current room.
	var initScript engine.Script
	if tmpl.Scripts.Init != "" {
		if initScript, err = resources.Get[engine.Script](ctx.Resources, tmpl.Scripts.Init); err != nil {
			return fmt.Errorf("overworld: room %q: init script: %w", name, err)
		}
	}
	room, err := NewRoom(tmpl, from, s.cfg, s.unlocked)
	if err != nil {
		return err
	}

	s.room = room
	s.previous = from
	s.text = nil
	ctx.Log().Info("room loaded", "room", name, "from", from)

	if initScript != nil {
		ctx.Start(initScript)
	}
	ctx.Raise(EnterEvent(name))
	return nil
}

// UnlockExit opens the active room's exits to target for the rest of the
// session.
func (s *Screen) UnlockExit(target string) {
	if s.room == nil {
		return
	}
	s.unlocked[exitKey(s.room.Name(), target)] = true
	s.room.Unlock(target)
}

// Unlocked returns the opened exits as "room>target" keys, sorted.
func (s *Screen) Unlocked() []string {
	keys := make([]string, 0, len(s.unlocked))
	for k := range s.unlocked {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RestoreUnlocked replaces the opened exits, e.g. from a save slot.
// It applies to rooms loaded afterwards.
func (s *Screen) RestoreUnlocked(keys []string) {
	s.unlocked = make(map[string]bool, len(keys))
	for _, k := range keys {
		s.unlocked[k] = true
	}
}

// ShowText implements dialog.TextBox.
func (s *Screen) ShowText(speaker, text string) {
	s.text = &textState{speaker: speaker, text: text}
	if s.room != nil {
		s.room.player.Stop()
	}
}

// ClearText implements dialog.TextBox.
func (s *Screen) ClearText() {
	s.text = nil
}

// TextOpen reports whether a dialogue is on screen.
func (s *Screen) TextOpen() bool {
	return s.text != nil
}

// Update implements engine.Screen.
func (s *Screen) Update(ctx engine.GameContext, dt time.Duration) {
	if s.room == nil || s.text != nil {
		return
	}
	exit, ok := s.room.Update(dt)
	if !ok {
		return
	}
	if err := s.LoadRoom(ctx, exit.To, s.room.Name()); err != nil {
		ctx.Log().Error("room transition failed", "to", exit.To, "error", err)
	}
}

// HandleAction implements engine.Screen.
func (s *Screen) HandleAction(ctx engine.GameContext, action core.Action) {
	if s.room == nil {
		return
	}

	if dir, ok := action.Direction(); ok {
		if s.text == nil {
			s.room.player.Walk(dir)
		}
		return
	}

	switch action {
	case core.ActionConfirm:
		// A confirm that closes a dialogue must not also start a new one.
		open := s.text != nil
		ctx.Raise(engine.EventConfirm)
		if !open {
			s.interact(ctx)
		}
	case core.ActionCancel:
		ctx.Raise(engine.EventCancel)
	}
}

// interact uses the interactable in front of or under the player.
func (s *Screen) interact(ctx engine.GameContext) {
	p := s.room.player
	it, ok := s.room.InteractableAt(p.Facing())
	if !ok {
		it, ok = s.room.InteractableAt(p.Position())
	}
	if !ok {
		return
	}

	if it.Dialog != "" {
		if _, err := ctx.StartNamed(it.Dialog); err != nil {
			ctx.Log().Error("interaction failed", "dialog", it.Dialog, "error", err)
		}
	}
	if it.Event != "" {
		ctx.Raise(it.Event)
	}
}

// Render implements engine.Screen.
func (s *Screen) Render(_ engine.GameContext, dst *core.Screen) {
	if s.room == nil {
		return
	}

	dst.DrawText(1, 0, s.room.Title(), core.ColorSpeaker)

	const originX, originY = 1, 2
	pass := s.room.pass
	for y := 0; y < pass.Height(); y++ {
		for x := 0; x < pass.Width(); x++ {
			p := core.Point{X: x, Y: y}
			r, c := s.tileGlyph(p)
			dst.Set(originX+x, originY+y, r, c)
		}
	}

	player := s.room.player
	pos := player.Position()
	dst.Set(originX+pos.X, originY+pos.Y, playerGlyph(player.Direction()), core.ColorPlayer)

	if s.text != nil {
		s.renderText(dst)
	}
}

func (s *Screen) tileGlyph(p core.Point) (rune, core.Color) {
	if x, ok := s.room.ExitAt(p); ok {
		if x.Locked {
			return '+', core.ColorWall
		}
		return '▒', core.ColorExit
	}
	r := s.room.pass.Tile(p)
	if _, ok := s.room.InteractableAt(p); ok {
		return r, core.ColorInteract
	}
	switch {
	case r == '#':
		return '█', core.ColorWall
	case r == '.':
		return '·', core.ColorFloor
	case s.room.pass.Passable(p):
		return r, core.ColorFloor
	default:
		return r, core.ColorWall
	}
}

func (s *Screen) renderText(dst *core.Screen) {
	box := core.NewRect(0, dst.Height()-textBoxHeight, dst.Width(), textBoxHeight)
	dst.DrawBox(box, core.ColorBorder)

	if s.text.speaker != "" {
		dst.DrawText(box.X+2, box.Y, " "+s.text.speaker+" ", core.ColorSpeaker)
	}
	lines := wrap(s.text.text, box.W-4)
	for i := 0; i < len(lines) && i < box.H-2; i++ {
		dst.DrawText(box.X+2, box.Y+1+i, lines[i], core.ColorText)
	}
}

func playerGlyph(d core.Direction) rune {
	switch d {
	case core.DirBackward:
		return '^'
	case core.DirLeft:
		return '<'
	case core.DirRight:
		return '>'
	default:
		return 'v'
	}
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
