package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-overworld/internal/storage"
)

func TestMenuModel(t *testing.T) {
	saves := []storage.SaveData{
		{Slot: "quick", Room: "hallway", UpdatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)},
		{Slot: "alice", Room: "home"},
	}
	m := NewMenuModel(saves, 80, 24)

	view := m.View()
	for _, want := range []string{"New game", `Continue "quick"`, "hallway", `Continue "alice"`} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil {
		t.Error("selecting should quit the menu")
	}
	if m.Selected() == nil || m.Selected().Slot != "quick" {
		t.Errorf("Selected() = %+v, expected slot quick", m.Selected())
	}
}

func TestMenuModelNewGameAndQuit(t *testing.T) {
	m := NewMenuModel(nil, 80, 24)

	// Up at the top stays on "New game".
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := next.(MenuModel).Selected(); sel == nil || sel.Slot != "" {
		t.Errorf("Selected() = %+v, expected a new game", sel)
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || next.(MenuModel).Selected() != nil {
		t.Error("q should quit without a selection")
	}
	if next.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestRunMenuWithoutSaves(t *testing.T) {
	res, err := RunMenu(nil, 80, 24)
	if err != nil || res.Quit || res.Slot != "" {
		t.Errorf("RunMenu(nil) = %+v, %v; expected a new game", res, err)
	}
}
