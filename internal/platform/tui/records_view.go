package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/logview/internal/records"
)

// RecordBankKeyMap defines the key bindings for the record bank.
type RecordBankKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordBankKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Clear, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordBankKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Clear, k.Quit}}
}

// DefaultRecordBankKeyMap returns default key bindings.
func DefaultRecordBankKeyMap() RecordBankKeyMap {
	return RecordBankKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear records"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordBankModel shows stored game records and their stats.
type RecordBankModel struct {
	bank     *records.Bank
	list     []records.GameRecord
	stats    records.Stats
	err      error
	table    table.Model
	help     help.Model
	keys     RecordBankKeyMap
	width    int
	height   int
	quitting bool
}

// NewRecordBankModel creates a record bank view and loads its records.
func NewRecordBankModel(bank *records.Bank, width, height int) RecordBankModel {
	m := RecordBankModel{
		bank:   bank,
		keys:   DefaultRecordBankKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordBankModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Targets", Width: 9},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}

	height := m.height - 10 // Title, stats, help and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// reload reads the bank and refreshes the table rows.
func (m *RecordBankModel) reload() {
	m.list, m.err = m.bank.Load()
	m.stats = records.Summarize(m.list)

	rows := make([]table.Row, len(m.list))
	for i, r := range m.list {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d/%d", r.TargetsHit, r.TotalTargets),
			records.FormatDuration(r.Duration),
			r.Date,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the record bank model.
func (m RecordBankModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the record bank.
func (m RecordBankModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			if err := m.bank.Clear(); err != nil {
				m.err = err
				return m, nil
			}
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the record bank.
func (m RecordBankModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("MEMORY BANK", m.width)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Best Score: %d   Best Time: %s   Total Games: %d",
		m.stats.BestScore, records.FormatDuration(m.stats.BestTime), m.stats.TotalGames)
	b.WriteString(centerText(headerStyle.Render(statsLine), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(centerText(errorStyle.Render(m.err.Error()), m.width))
	case len(m.list) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(centerText(boxStyle.Render(emptyStyle.Render("No records yet.")), m.width))
	default:
		b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunRecordBank runs the record bank screen.
func RunRecordBank(bank *records.Bank, width, height int) error {
	p := tea.NewProgram(
		NewRecordBankModel(bank, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
