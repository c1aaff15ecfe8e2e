package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-overworld/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorFloor:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorExit:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorInteract: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorSpeaker:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorBorder:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
