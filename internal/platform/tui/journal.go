package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-overworld/internal/storage"
)

// Journal view tabs.
const (
	tabRuns = iota
	tabEvents
	tabCount
)

var tabTitles = [tabCount]string{"Scripts", "Events"}

// JournalKeyMap defines the key bindings for the journal view.
type JournalKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Reload, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel browses the script journal stored in sqlite.
type JournalModel struct {
	store  *storage.Store
	limit  int
	tab    int
	runs   []storage.ScriptRun
	events []storage.EventEntry
	err    error
	table  table.Model
	help   help.Model
	keys   JournalKeyMap
	width  int
	height int
}

// NewJournalModel creates a journal view showing the latest limit entries.
func NewJournalModel(store *storage.Store, limit, width, height int) JournalModel {
	m := JournalModel{
		store:  store,
		limit:  limit,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	m.table = m.createTable()
	return m
}

func (m *JournalModel) reload() {
	m.runs, m.err = m.store.RecentRuns(m.limit)
	if m.err != nil {
		return
	}
	m.events, m.err = m.store.RecentEvents(m.limit)
}

// createTable builds the table for the current tab.
func (m *JournalModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabRuns:
		columns = []table.Column{
			{Title: "Session", Width: 12},
			{Title: "Script", Width: 7},
			{Title: "Name", Width: max(m.width-60, 24)},
			{Title: "Started", Width: 14},
			{Title: "Ended", Width: 14},
		}
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			ended := "waiting"
			if r.Done() {
				ended = r.EndedAt.Format("Jan 02 15:04")
			}
			rows[i] = table.Row{
				shortID(r.SessionID),
				fmt.Sprintf("#%d", r.Script),
				r.Name,
				r.StartedAt.Format("Jan 02 15:04"),
				ended,
			}
		}
	default:
		columns = []table.Column{
			{Title: "Session", Width: 12},
			{Title: "Event", Width: max(m.width-50, 24)},
			{Title: "Woken", Width: 6},
			{Title: "Raised", Width: 14},
		}
		rows = make([]table.Row, len(m.events))
		for i, e := range m.events {
			rows[i] = table.Row{
				shortID(e.SessionID),
				e.Event,
				fmt.Sprintf("%d", e.Subscribers),
				e.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:11] + "."
	}
	return id
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal view.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.reload()
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	b.WriteString(titleStyle.Render("SCRIPT JOURNAL"))
	b.WriteString("  ")
	for i, title := range tabTitles {
		if i == m.tab {
			b.WriteString(activeTabStyle.Render(title))
		} else {
			b.WriteString(tabStyle.Render(title))
		}
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.tableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tableContent renders the table, an error or the empty message.
func (m JournalModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Cannot read journal: " + m.err.Error())
	}
	if (m.tab == tabRuns && len(m.runs) == 0) || (m.tab == tabEvents && len(m.events) == 0) {
		return emptyStyle.Render("Nothing journaled yet.\nPlay a session to fill the journal!")
	}
	return m.table.View()
}

// RunJournal runs the journal view in the local terminal.
func RunJournal(store *storage.Store, limit, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(store, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
