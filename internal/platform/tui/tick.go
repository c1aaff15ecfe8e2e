// Package tui provides the Bubble Tea front end for the overworld.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a frame update.
type TickMsg time.Time

// maxFrameDelta caps the time one frame may simulate, so a stalled terminal
// does not teleport the player across the room.
const maxFrameDelta = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the time elapsed between two ticks, clamped to
// [0, maxFrameDelta]. The first tick (zero last) advances by interval.
func frameDelta(last, now time.Time, interval time.Duration) time.Duration {
	if last.IsZero() {
		return interval
	}
	return min(max(now.Sub(last), 0), maxFrameDelta)
}
