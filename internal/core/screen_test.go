package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 6)

	if s.Width() != 20 || s.Height() != 6 {
		t.Fatalf("size = %dx%d, expected 20x6", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != strings.Repeat(" ", 20) {
			t.Errorf("row %d not blank: %q", y, s.Row(y))
		}
	}
}

func TestScreenSetGetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(3, 4, '@', ColorPlayer)
	c := s.GetCell(3, 4)
	if c.Rune != '@' || c.Color != ColorPlayer {
		t.Errorf("GetCell(3, 4) = %+v, expected {'@' ColorPlayer}", c)
	}

	// Out of bounds writes are ignored, reads return blank
	s.Set(-1, 0, 'X', ColorWall)
	s.Set(0, 10, 'X', ColorWall)
	if s.Get(-1, 0) != ' ' || s.Get(0, 10) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "héllo", ColorText)

	if got := s.Row(0); got != "  hél" {
		t.Errorf("Row(0) = %q, expected %q", got, "  hél")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(2, 1, 'X', ColorDefault)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorBorder)

	expected := "┌────┐\n│    │\n│    │\n└────┘"
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorBorder {
		t.Error("border should use the given color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'X', ColorDefault)
	s.Resize(8, 2)

	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 8x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}
