// Package core provides the basic types shared by the overworld, the script
// runtime and the terminal front end. It has no terminal dependencies so game
// logic stays testable without Bubble Tea.
package core

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is where a character is facing.
type Direction int

const (
	DirForward  Direction = iota // Towards the camera (down the screen)
	DirBackward                  // Away from the camera (up the screen)
	DirLeft
	DirRight
)

// ParseDirection maps manifest names to directions.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward":
		return DirForward, true
	case "backward":
		return DirBackward, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return DirForward, false
}

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit tile offset for one step in direction d.
func (d Direction) Delta() Point {
	switch d {
	case DirForward:
		return Point{Y: 1}
	case DirBackward:
		return Point{Y: -1}
	case DirLeft:
		return Point{X: -1}
	case DirRight:
		return Point{X: 1}
	}
	return Point{}
}

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}
