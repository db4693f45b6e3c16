package records

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

type AddMsg struct{}

type EditMsg struct {
	Interview models.Interview
}

type DeleteMsg struct {
	Interview models.Interview
}

// Headers are the column titles, shared with the plain table printed by the
// list command.
var Headers = []string{"ID", "Interviewee", "Date", "Time", "Duration", "Role", "Department", "Interviewer", "Notes"}

var widths = []int{5, 20, 10, 5, 8, 16, 14, 16, 24}

// Cells renders one record as table cells.
func Cells(r models.Interview) []string {
	interviewer := r.Interviewer
	if interviewer == "" {
		interviewer = "unassigned"
	}
	return []string{
		r.IDString(),
		r.Interviewee,
		r.Date,
		shortTime(r.Time),
		duration(r.Duration),
		r.Role,
		r.Department,
		interviewer,
		oneLine(r.AdditionalNotes),
	}
}

func shortTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func duration(d string) string {
	minutes, err := utils.DurationMinutes(d)
	if err != nil {
		return d
	}
	switch {
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	case minutes > 60:
		return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "schedule"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// tableKeys keeps the table off the letters the console binds.
func tableKeys() table.KeyMap {
	return table.KeyMap{
		LineUp:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		LineDown:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "½ page up")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "½ page down")),
		GotoTop:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
		GotoBottom:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom")),
	}
}

type Model struct {
	table   table.Model
	keys    KeyMap
	records []models.Interview
}

func New(width, height int) Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithKeyMap(tableKeys()),
		table.WithStyles(styles),
	)
	m := Model{table: t, keys: DefaultKeyMap()}
	m.SetSize(width, height)
	return m
}

func columns() []table.Column {
	cols := make([]table.Column, len(Headers))
	for i, h := range Headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	return cols
}

// SetRecords replaces the rows, keeping the cursor in range.
func (m *Model) SetRecords(rs []models.Interview) {
	m.records = rs
	rows := make([]table.Row, len(rs))
	for i, r := range rs {
		rows[i] = table.Row(Cells(r))
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Selected returns the record under the cursor.
func (m Model) Selected() (models.Interview, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.records) {
		return models.Interview{}, false
	}
	return m.records[c], true
}

func (m Model) Len() int {
	return len(m.records)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if r, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditMsg{Interview: r} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteMsg{Interview: r} }
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.records) == 0 {
		return "\n  No interviews in this view.\n  Press 'a' to schedule one."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	if height > 0 {
		m.table.SetHeight(height)
	}
	if width > 0 {
		m.table.SetWidth(width)
	}
}
