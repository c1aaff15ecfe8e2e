package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-overworld/internal/storage"
)

// MenuItem is one entry of the title menu: a new game or a save slot.
type MenuItem struct {
	Slot  string // Empty for a new game
	Label string
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     KeyMap
	quitting bool
	selected *MenuItem // Set when the user picks an entry
}

// NewMenuModel creates a title menu listing "New game" and then the
// saves, ordered as given.
func NewMenuModel(saves []storage.SaveData, width, height int) MenuModel {
	items := make([]MenuItem, 0, len(saves)+1)
	items = append(items, MenuItem{Label: "New game"})
	for _, s := range saves {
		items = append(items, MenuItem{
			Slot:  s.Slot,
			Label: fmt.Sprintf("Continue %q  %s  %s", s.Slot, s.Room, s.UpdatedAt.Format("2006-01-02 15:04")),
		})
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Confirm):
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  O V E R W O R L D  ", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Slot string // Save slot to continue; empty for a new game
	Quit bool
}

// RunMenu shows the title menu for the saves in store. Without saves there is
// nothing to choose and it returns a new game immediately.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	if store == nil {
		return MenuResult{}, nil
	}
	saves, err := store.ListSaves()
	if err != nil {
		return MenuResult{}, err
	}
	if len(saves) == 0 {
		return MenuResult{}, nil
	}

	p := tea.NewProgram(
		NewMenuModel(saves, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Selected() == nil {
		return MenuResult{Quit: true}, nil
	}
	return MenuResult{Slot: m.Selected().Slot}, nil
}
