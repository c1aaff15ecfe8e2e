// Package overworld implements the walkable world: rooms loaded from YAML
// manifests, a passability map, the player, and the screen that ties them to
// the script runtime.
package overworld

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-overworld/internal/core"
)

// Entrance names used when a room is not entered from another room.
const (
	FromStart = "_"    // New game
	FromSave  = "save" // Restored from a save slot; position is set afterwards
)

// RoomTemplate is the parsed room manifest.
type RoomTemplate struct {
	Name          string              `yaml:"name"`
	Title         string              `yaml:"title"`
	Map           string              `yaml:"map"`
	Entrances     map[string]Entrance `yaml:"entrances"`
	Exits         []Exit              `yaml:"exits,omitempty"`
	Interactables []Interactable      `yaml:"interact,omitempty"`
	Scripts       RoomScripts         `yaml:"scripts,omitempty"`
}

// Entrance is where the player appears when coming from a given room.
type Entrance struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
}

// Exit is a tile that moves the player into another room.
type Exit struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	To     string `yaml:"to"`
	Locked bool   `yaml:"locked,omitempty"`
}

// Interactable is a tile the player can use with the confirm key.
// Using it raises Event and/or starts the Dialog script.
type Interactable struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Event  string `yaml:"event,omitempty"`
	Dialog string `yaml:"dialog,omitempty"`
}

// RoomScripts names scripts attached to a room.
type RoomScripts struct {
	Init string `yaml:"init,omitempty"`
}

// ErrInvalidRoom wraps every manifest validation failure.
var ErrInvalidRoom = errors.New("invalid room")

// ParseRoom parses and validates a room manifest.
func ParseRoom(data []byte) (RoomTemplate, error) {
	var t RoomTemplate
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("overworld: yaml unmarshal: %w", err)
	}
	t.Map = strings.Trim(t.Map, "\n")
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("overworld: room %q: %w", t.Name, err)
	}
	return t, nil
}

func (t RoomTemplate) validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRoom)
	}
	if t.Map == "" {
		return fmt.Errorf("%w: empty map", ErrInvalidRoom)
	}
	if _, ok := t.Entrances[FromStart]; !ok {
		return fmt.Errorf("%w: no default entrance %q", ErrInvalidRoom, FromStart)
	}

	pass := NewPassMap(t.Map)
	for from, e := range t.Entrances {
		if _, ok := core.ParseDirection(e.Direction); !ok {
			return fmt.Errorf("%w: entrance %q: unknown direction %q", ErrInvalidRoom, from, e.Direction)
		}
		if !pass.Passable(core.Point{X: e.X, Y: e.Y}) {
			return fmt.Errorf("%w: entrance %q at (%d,%d) is blocked", ErrInvalidRoom, from, e.X, e.Y)
		}
	}
	for _, x := range t.Exits {
		if x.To == "" {
			return fmt.Errorf("%w: exit at (%d,%d) has no target", ErrInvalidRoom, x.X, x.Y)
		}
	}
	for _, it := range t.Interactables {
		if it.Event == "" && it.Dialog == "" {
			return fmt.Errorf("%w: interactable at (%d,%d) does nothing", ErrInvalidRoom, it.X, it.Y)
		}
	}
	return nil
}
