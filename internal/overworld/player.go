package overworld

import (
	"time"

	"github.com/vovakirdan/tui-overworld/internal/core"
)

// PlayerConfig tunes movement.
type PlayerConfig struct {
	Speed      float64       // Tiles per second while walking
	WalkWindow time.Duration // How long one key press keeps the player walking
}

// DefaultPlayerConfig returns the movement tuning used without a config file.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{Speed: 8, WalkWindow: 150 * time.Millisecond}
}

// Passability answers whether a tile can be entered.
type Passability interface {
	Passable(p core.Point) bool
}

// Player is the controllable character. Movement is tile based: a key press
// opens a walking window, and Update converts elapsed time into whole steps.
type Player struct {
	cfg       PlayerConfig
	pos       core.Point
	dir       core.Direction
	remaining time.Duration
	progress  float64 // Fraction of the next tile already walked
}

// NewPlayer places a player.
func NewPlayer(cfg PlayerConfig, pos core.Point, dir core.Direction) *Player {
	return &Player{cfg: cfg, pos: pos, dir: dir}
}

// Position returns the current tile.
func (p *Player) Position() core.Point {
	return p.pos
}

// Direction returns where the player faces.
func (p *Player) Direction() core.Direction {
	return p.dir
}

// Facing returns the tile in front of the player.
func (p *Player) Facing() core.Point {
	return p.pos.Add(p.dir.Delta())
}

// Walking reports whether the walking window is open.
func (p *Player) Walking() bool {
	return p.remaining > 0
}

// Place moves the player without walking.
func (p *Player) Place(pos core.Point, dir core.Direction) {
	p.pos, p.dir = pos, dir
	p.Stop()
}

// Walk starts or extends walking in dir. A fresh press moves one tile on the
// next update so single taps feel immediate.
func (p *Player) Walk(dir core.Direction) {
	if !p.Walking() || p.dir != dir {
		p.progress = 1
	}
	p.dir = dir
	p.remaining = p.cfg.WalkWindow
}

// Stop closes the walking window.
func (p *Player) Stop() {
	p.remaining = 0
	p.progress = 0
}

// Update advances the player by dt. It returns true if the tile changed.
func (p *Player) Update(dt time.Duration, pass Passability) bool {
	if !p.Walking() {
		return false
	}

	step := min(dt, p.remaining)
	p.remaining -= step
	p.progress += p.cfg.Speed * step.Seconds()

	moved := false
	for p.progress >= 1 {
		p.progress--
		next := p.Facing()
		if !pass.Passable(next) {
			p.Stop()
			break
		}
		p.pos = next
		moved = true
	}
	if p.remaining <= 0 {
		p.progress = 0
	}
	return moved
}
