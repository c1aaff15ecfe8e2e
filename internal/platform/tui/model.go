package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-overworld/internal/core"
	"github.com/vovakirdan/tui-overworld/internal/game"
)

// footerHeight is the number of rows below the game area.
const footerHeight = 1

// DefaultSlot is the save slot used by the save key when none is configured.
const DefaultSlot = "quick"

// ModelOptions configures a Model.
type ModelOptions struct {
	Interval time.Duration // Tick interval
	Width    int
	Height   int
	Slot     string     // Save slot for the save key
	Online   func() int // Optional; reports connected players for the footer
}

// Model is the Bubble Tea model running one game session.
type Model struct {
	session  *game.Session
	screen   *core.Screen
	opts     ModelOptions
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	lastTick time.Time
	status   string
	quitting bool
}

// NewModel creates a model for session.
func NewModel(session *game.Session, opts ModelOptions) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	keys := DefaultKeyMap()
	return Model{
		session: session,
		screen:  core.NewScreen(opts.Width, max(opts.Height-footerHeight, 0)),
		opts:    opts,
		keys:    keys,
		mapper:  NewKeyMapper(keys),
		help:    help.New(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Width, m.opts.Height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		m.session.Update(frameDelta(m.lastTick, now, m.opts.Interval))
		m.lastTick = now
		return m, tickCmd(m.opts.Interval)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.mapper.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionSave:
		if err := m.session.Save(m.opts.Slot); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("saved to %q", m.opts.Slot)
		}
	case core.ActionNone:
	default:
		m.status = ""
		m.session.HandleAction(action)
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	if m.help.ShowAll {
		return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
	}
	return RenderScreen(m.screen) + "\n" + m.footer()
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) footer() string {
	left := m.help.View(m.keys)
	if m.status != "" {
		left = statusStyle.Render(m.status)
	}
	if m.opts.Online != nil {
		left += helpStyle.Render(fmt.Sprintf(" • %d online", m.opts.Online()))
	}
	return helpStyle.Render(left)
}

// Run starts the Bubble Tea program for session in the local terminal.
func Run(session *game.Session, opts ModelOptions) error {
	p := tea.NewProgram(
		NewModel(session, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
