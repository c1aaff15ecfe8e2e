package overworld

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-overworld/internal/core"
)

// Room is a live instance of a RoomTemplate.
type Room struct {
	template RoomTemplate
	pass     *PassMap
	player   *Player
	exits    []Exit
}

// NewRoom instantiates tmpl for a player arriving from room from.
// Unknown origins fall back to the default entrance. unlocked lists exit
// targets that have been opened earlier in the session.
func NewRoom(tmpl RoomTemplate, from string, cfg PlayerConfig, unlocked map[string]bool) (*Room, error) {
	entrance, ok := tmpl.Entrances[from]
	if !ok {
		entrance, ok = tmpl.Entrances[FromStart]
	}
	if !ok {
		return nil, fmt.Errorf("overworld: room %q has no entrance for %q", tmpl.Name, from)
	}
	dir, ok := core.ParseDirection(entrance.Direction)
	if !ok {
		return nil, fmt.Errorf("overworld: room %q: unknown direction %q", tmpl.Name, entrance.Direction)
	}

	exits := make([]Exit, len(tmpl.Exits))
	copy(exits, tmpl.Exits)
	for i := range exits {
		if unlocked[exitKey(tmpl.Name, exits[i].To)] {
			exits[i].Locked = false
		}
	}

	return &Room{
		template: tmpl,
		pass:     NewPassMap(tmpl.Map),
		player:   NewPlayer(cfg, core.Point{X: entrance.X, Y: entrance.Y}, dir),
		exits:    exits,
	}, nil
}

// Name returns the room's resource name.
func (r *Room) Name() string {
	return r.template.Name
}

// Title returns the display title.
func (r *Room) Title() string {
	return r.template.Title
}

// Template returns the manifest the room was built from.
func (r *Room) Template() RoomTemplate {
	return r.template
}

// Player returns the room's player.
func (r *Room) Player() *Player {
	return r.player
}

// PassMap returns the static passability map.
func (r *Room) PassMap() *PassMap {
	return r.pass
}

// Passable implements Passability: static map plus open exits.
func (r *Room) Passable(p core.Point) bool {
	if x, ok := r.ExitAt(p); ok {
		return !x.Locked
	}
	return r.pass.Passable(p)
}

// ExitAt returns the exit on tile p.
func (r *Room) ExitAt(p core.Point) (Exit, bool) {
	for _, x := range r.exits {
		if x.X == p.X && x.Y == p.Y {
			return x, true
		}
	}
	return Exit{}, false
}

// InteractableAt returns the interactable on tile p.
func (r *Room) InteractableAt(p core.Point) (Interactable, bool) {
	for _, it := range r.template.Interactables {
		if it.X == p.X && it.Y == p.Y {
			return it, true
		}
	}
	return Interactable{}, false
}

// Unlock opens every exit leading to target. It reports whether any exit changed.
func (r *Room) Unlock(target string) bool {
	changed := false
	for i := range r.exits {
		if r.exits[i].To == target && r.exits[i].Locked {
			r.exits[i].Locked = false
			changed = true
		}
	}
	return changed
}

// Update advances the player and returns the exit it stepped on, if any.
func (r *Room) Update(dt time.Duration) (Exit, bool) {
	if !r.player.Update(dt, r) {
		return Exit{}, false
	}
	return r.ExitAt(r.player.Position())
}

func exitKey(room, target string) string {
	return room + ">" + target
}
