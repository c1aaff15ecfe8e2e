package overworld

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-overworld/internal/core"
)

const testRoomYAML = `
name: test
title: Test Room
map: |
  #######
  #.....#
  #..B..#
  #.....D
  #######
entrances:
  _: {x: 1, y: 1, direction: forward}
  other: {x: 5, y: 3, direction: left}
exits:
  - {x: 6, y: 3, to: other, locked: true}
interact:
  - {x: 3, y: 2, event: test/bed}
  - {x: 1, y: 3, dialog: test/chat}
`

func mustParseRoom(t *testing.T, src string) RoomTemplate {
	t.Helper()
	tmpl, err := ParseRoom([]byte(src))
	if err != nil {
		t.Fatalf("ParseRoom failed: %v", err)
	}
	return tmpl
}

func TestPassMap(t *testing.T) {
	m := NewPassMap("###\n#.B\n#")

	if m.Width() != 3 || m.Height() != 3 {
		t.Errorf("size = %dx%d, expected 3x3", m.Width(), m.Height())
	}

	cases := []struct {
		p    core.Point
		want bool
	}{
		{core.Point{X: 1, Y: 1}, true},
		{core.Point{X: 0, Y: 0}, false},  // wall
		{core.Point{X: 2, Y: 1}, false},  // furniture
		{core.Point{X: 1, Y: 2}, false},  // past short row
		{core.Point{X: -1, Y: 1}, false}, // outside
		{core.Point{X: 1, Y: 9}, false},
	}
	for _, c := range cases {
		if got := m.Passable(c.p); got != c.want {
			t.Errorf("Passable(%v) = %v, expected %v", c.p, got, c.want)
		}
	}
}

func TestParseRoom(t *testing.T) {
	tmpl := mustParseRoom(t, testRoomYAML)

	if tmpl.Name != "test" || tmpl.Title != "Test Room" {
		t.Errorf("name/title = %q/%q", tmpl.Name, tmpl.Title)
	}
	if strings.HasPrefix(tmpl.Map, "\n") || strings.HasSuffix(tmpl.Map, "\n") {
		t.Errorf("map should be trimmed, got %q", tmpl.Map)
	}
	if len(tmpl.Entrances) != 2 || len(tmpl.Exits) != 1 || len(tmpl.Interactables) != 2 {
		t.Errorf("unexpected counts: %d entrances, %d exits, %d interactables",
			len(tmpl.Entrances), len(tmpl.Exits), len(tmpl.Interactables))
	}
}

func TestParseRoomInvalid(t *testing.T) {
	cases := map[string]string{
		"no name":          "map: \"#.#\"\nentrances: {_: {x: 1, y: 0, direction: forward}}",
		"no map":           "name: x\nentrances: {_: {x: 1, y: 0, direction: forward}}",
		"no default":       "name: x\nmap: \"#.#\"\nentrances: {a: {x: 1, y: 0, direction: forward}}",
		"bad direction":    "name: x\nmap: \"#.#\"\nentrances: {_: {x: 1, y: 0, direction: north}}",
		"blocked entrance": "name: x\nmap: \"#.#\"\nentrances: {_: {x: 0, y: 0, direction: forward}}",
		"exit no target":   "name: x\nmap: \"#.#\"\nentrances: {_: {x: 1, y: 0, direction: forward}}\nexits: [{x: 2, y: 0}]",
		"idle interact":    "name: x\nmap: \"#.#\"\nentrances: {_: {x: 1, y: 0, direction: forward}}\ninteract: [{x: 2, y: 0}]",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRoom([]byte(src))
			if !errors.Is(err, ErrInvalidRoom) {
				t.Errorf("err = %v, expected ErrInvalidRoom", err)
			}
		})
	}

	if _, err := ParseRoom([]byte("name: [")); err == nil || errors.Is(err, ErrInvalidRoom) {
		t.Errorf("malformed yaml: err = %v, expected a parse error", err)
	}
}

func TestNewRoomEntrances(t *testing.T) {
	tmpl := mustParseRoom(t, testRoomYAML)

	r, err := NewRoom(tmpl, "other", DefaultPlayerConfig(), nil)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	if r.Player().Position() != (core.Point{X: 5, Y: 3}) || r.Player().Direction() != core.DirLeft {
		t.Errorf("player at %v facing %v, expected (5,3) left", r.Player().Position(), r.Player().Direction())
	}

	r, err = NewRoom(tmpl, "nowhere", DefaultPlayerConfig(), nil)
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	if r.Player().Position() != (core.Point{X: 1, Y: 1}) {
		t.Errorf("unknown origin should use the default entrance, got %v", r.Player().Position())
	}
}

func TestRoomLockedExit(t *testing.T) {
	tmpl := mustParseRoom(t, testRoomYAML)
	r, _ := NewRoom(tmpl, "other", DefaultPlayerConfig(), nil)
	door := core.Point{X: 6, Y: 3}

	if r.Passable(door) {
		t.Fatal("locked exit should block")
	}
	if !r.Unlock("other") {
		t.Fatal("Unlock should report a change")
	}
	if r.Unlock("other") {
		t.Error("second Unlock should be a no-op")
	}
	if !r.Passable(door) {
		t.Error("unlocked exit should be passable")
	}
	if !tmpl.Exits[0].Locked {
		t.Error("unlocking a room must not modify its template")
	}

	again, _ := NewRoom(tmpl, "other", DefaultPlayerConfig(), map[string]bool{"test>other": true})
	if !again.Passable(door) {
		t.Error("exit listed as unlocked should start open")
	}
}

func TestRoomUpdateReportsExit(t *testing.T) {
	tmpl := mustParseRoom(t, testRoomYAML)
	r, _ := NewRoom(tmpl, "other", DefaultPlayerConfig(), map[string]bool{"test>other": true})

	r.Player().Walk(core.DirRight)
	exit, ok := r.Update(16 * time.Millisecond)
	if !ok {
		t.Fatal("stepping onto the door should report the exit")
	}
	if exit.To != "other" {
		t.Errorf("exit.To = %q, expected other", exit.To)
	}
}

func TestPlayerWalkAndCollide(t *testing.T) {
	pass := NewPassMap("#####\n#...#\n#####")
	p := NewPlayer(PlayerConfig{Speed: 10, WalkWindow: time.Second}, core.Point{X: 1, Y: 1}, core.DirForward)

	p.Walk(core.DirRight)
	if !p.Update(10*time.Millisecond, pass) {
		t.Fatal("a fresh press should move one tile immediately")
	}
	if p.Position() != (core.Point{X: 2, Y: 1}) {
		t.Fatalf("position = %v, expected (2,1)", p.Position())
	}

	// 10 tiles/s for 500ms would be five tiles, the wall stops at (3,1).
	p.Update(500*time.Millisecond, pass)
	if p.Position() != (core.Point{X: 3, Y: 1}) {
		t.Errorf("position = %v, expected (3,1) against the wall", p.Position())
	}
	if p.Walking() {
		t.Error("bumping into a wall should stop walking")
	}
}

func TestPlayerWalkWindowExpires(t *testing.T) {
	pass := NewPassMap("##########\n#........#\n##########")
	p := NewPlayer(PlayerConfig{Speed: 10, WalkWindow: 200 * time.Millisecond}, core.Point{X: 1, Y: 1}, core.DirRight)

	p.Walk(core.DirRight)
	p.Update(time.Second, pass)
	// One immediate step plus 200ms at 10 tiles/s.
	if p.Position() != (core.Point{X: 4, Y: 1}) {
		t.Errorf("position = %v, expected (4,1)", p.Position())
	}
	if p.Walking() {
		t.Error("walking window should have closed")
	}
}

func TestPlayerTurnWithoutMoving(t *testing.T) {
	pass := NewPassMap("###\n#.#\n###")
	p := NewPlayer(DefaultPlayerConfig(), core.Point{X: 1, Y: 1}, core.DirForward)

	p.Walk(core.DirLeft)
	if p.Update(16*time.Millisecond, pass) {
		t.Error("walking into a wall should not move")
	}
	if p.Direction() != core.DirLeft {
		t.Errorf("direction = %v, expected left", p.Direction())
	}
	if p.Facing() != (core.Point{X: 0, Y: 1}) {
		t.Errorf("facing = %v, expected (0,1)", p.Facing())
	}
}
