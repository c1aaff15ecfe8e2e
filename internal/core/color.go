package core

// Color is a foreground color for a screen cell, mapped to terminal colors by
// the front end.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorFloor
	ColorExit
	ColorInteract
	ColorPlayer
	ColorText
	ColorSpeaker
	ColorBorder
	ColorDim
)
