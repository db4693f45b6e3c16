package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/tui/components/detail"
	"github.com/julianstephens/interviewdesk/internal/tui/components/records"
)

type Model struct {
	ctx   context.Context
	coord *coordinator.Coordinator

	state   constants.SessionState
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	table   records.Model
	detail  detail.Model

	form          *huh.Form
	interviewForm *InterviewFormModel
	filterForm    *FilterFormModel
	jumpForm      *JumpFormModel
	confirmForm   *ConfirmationFormModel
	pendingAction func() tea.Cmd
	editing       *models.Interview

	// mutating is set while a create, update or delete is in flight. Mutation
	// keys are ignored until it clears.
	mutating bool

	status    string
	statusErr bool
	quitting  bool
	width     int
	height    int
}

// NewModel builds the console over coord. ctx bounds every request the
// console makes.
func NewModel(ctx context.Context, coord *coordinator.Coordinator) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		ctx:     ctx,
		coord:   coord,
		state:   constants.StateBrowse,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		table:   records.New(0, 0),
		detail:  detail.New(0, 0),
	}
	m.syncTable()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// Init starts the first fetch for the initial selector.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.coord.Refresh()))
}

// Coordinator exposes the underlying coordinator.
func (m Model) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// State returns the current session state.
func (m Model) State() constants.SessionState {
	return m.state
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// syncTable pushes the visible projection into the table and detail pane.
func (m *Model) syncTable() {
	m.table.SetRecords(m.coord.Visible())
	m.syncDetail()
}

func (m *Model) syncDetail() {
	if r, ok := m.table.Selected(); ok {
		m.detail.SetInterview(&r)
		return
	}
	m.detail.SetInterview(nil)
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *Model) resize() {
	// tabs, selector, filters, status, help
	chrome := 8
	detailHeight := 0
	if m.height > 24 {
		detailHeight = 11
	}
	tableHeight := m.height - chrome - detailHeight
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetSize(m.width-4, tableHeight)
	m.detail.SetSize(m.width-8, max(detailHeight-2, 0))
}
