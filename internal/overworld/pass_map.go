package overworld

import (
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-overworld/internal/core"
)

// PassMap is the passability bitmap of a room, built from its text map.
// Walls ('#') and furniture (upper-case letters) block movement; everything
// else inside the map is walkable.
type PassMap struct {
	width  int
	height int
	rows   [][]rune
}

// NewPassMap builds a passability map from text lines.
func NewPassMap(text string) *PassMap {
	lines := strings.Split(text, "\n")
	m := &PassMap{height: len(lines), rows: make([][]rune, len(lines))}
	for y, line := range lines {
		m.rows[y] = []rune(line)
		m.width = max(m.width, len(m.rows[y]))
	}
	return m
}

// Width returns the widest row length.
func (m *PassMap) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *PassMap) Height() int {
	return m.height
}

// Tile returns the map character at p, or a space outside the map.
func (m *PassMap) Tile(p core.Point) rune {
	if p.Y < 0 || p.Y >= m.height || p.X < 0 || p.X >= len(m.rows[p.Y]) {
		return ' '
	}
	return m.rows[p.Y][p.X]
}

// Passable reports whether the player may stand on p.
// Tiles outside the map are never passable.
func (m *PassMap) Passable(p core.Point) bool {
	r := m.Tile(p)
	return r != ' ' && r != '#' && !unicode.IsUpper(r)
}
