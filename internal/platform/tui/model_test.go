package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-overworld/internal/config"
	"github.com/vovakirdan/tui-overworld/internal/core"
	"github.com/vovakirdan/tui-overworld/internal/game"
	"github.com/vovakirdan/tui-overworld/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	session, err := game.New(game.Options{Config: config.Default(), Store: store, SessionID: "tui"})
	if err != nil {
		t.Fatalf("game.New failed: %v", err)
	}
	t.Cleanup(session.Close)
	return NewModel(session, ModelOptions{Interval: 33 * time.Millisecond, Width: 60, Height: 20})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestFrameDelta(t *testing.T) {
	now := time.Now()
	interval := 33 * time.Millisecond

	if got := frameDelta(time.Time{}, now, interval); got != interval {
		t.Errorf("first tick delta = %v, expected %v", got, interval)
	}
	if got := frameDelta(now, now.Add(20*time.Millisecond), interval); got != 20*time.Millisecond {
		t.Errorf("delta = %v, expected 20ms", got)
	}
	if got := frameDelta(now, now.Add(5*time.Second), interval); got != maxFrameDelta {
		t.Errorf("delta = %v, expected clamp to %v", got, maxFrameDelta)
	}
	if got := frameDelta(now, now.Add(-time.Second), interval); got != 0 {
		t.Errorf("delta = %v, expected 0 for a clock going backwards", got)
	}
}

func TestModelConfirmAdvancesDialogue(t *testing.T) {
	m := newTestModel(t, nil)

	if !strings.Contains(m.View(), "Rise and shine") {
		t.Fatal("first frame of the wake-up dialogue should be visible")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if strings.Contains(m.View(), "Rise and shine") {
		t.Error("confirm should advance to the next frame")
	}
}

func TestModelTickMovesPlayer(t *testing.T) {
	m := newTestModel(t, nil)
	screen := m.session.Screen()
	for screen.TextOpen() {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}

	before := screen.Room().Player().Position()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if after := screen.Room().Player().Position(); after != before.Add(core.Point{X: 1}) {
		t.Errorf("player at %v, expected one step right of %v", after, before)
	}
}

func TestModelSave(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.status, DefaultSlot) {
		t.Errorf("status = %q, expected save confirmation", m.status)
	}
	if _, err := store.LoadGame(DefaultSlot); err != nil {
		t.Errorf("LoadGame failed: %v", err)
	}

	noStore := newTestModel(t, nil)
	noStore, _ = update(t, noStore, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(noStore.status, "save failed") {
		t.Errorf("status = %q, expected failure without storage", noStore.status)
	}
}

func TestModelQuitAndResize(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	if m.screen.Width() != 80 || m.screen.Height() != 30-footerHeight {
		t.Errorf("screen = %dx%d after resize", m.screen.Width(), m.screen.Height())
	}

	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should toggle the full help")
	}

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorPlayer)
	s.Set(3, 1, 'z', core.Color(200)) // unknown colors fall back to default

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "z") {
		t.Errorf("render lost text: %q", out)
	}
}

func TestJournalModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	empty := NewJournalModel(store, 10, 100, 30)
	if !strings.Contains(empty.View(), "Nothing journaled yet") {
		t.Error("empty journal should say so")
	}

	if _, err := store.RecordScriptStart("s1", 0, "overworld/rooms/home/init"); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordEvent("s1", "home/door", 1); err != nil {
		t.Fatal(err)
	}

	next, _ := empty.Update(runeKey('r'))
	m := next.(JournalModel)
	if !strings.Contains(m.View(), "overworld/rooms/home/init") {
		t.Errorf("scripts tab should list the run:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(JournalModel)
	if !strings.Contains(m.View(), "home/door") {
		t.Errorf("events tab should list the event:\n%s", m.View())
	}
}
