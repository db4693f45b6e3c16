package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/interviewdesk/internal/models"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows every field of the selected interview, including the ones the
// table truncates.
type Model struct {
	viewport  viewport.Model
	Interview *models.Interview
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetInterview shows r, or clears the pane when r is nil.
func (m *Model) SetInterview(r *models.Interview) {
	m.Interview = r
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Interview == nil {
		m.viewport.SetContent(mutedStyle.Render("Nothing selected."))
		return
	}
	r := m.Interview

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", nameStyle.Render(r.Interviewee), mutedStyle.Render("#"+r.IDString()))
	row := func(label, value string) {
		if value == "" {
			value = mutedStyle.Render("-")
		} else {
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), value)
	}
	row("When", strings.TrimSpace(r.Date+" "+r.Time))
	row("Duration", r.Duration)
	row("Role", r.Role)
	row("Department", r.Department)
	if r.Assigned() {
		row("Interviewer", r.Interviewer)
	} else {
		row("Interviewer", "unassigned")
	}
	row("Email", r.Email)
	row("Phone", r.Phone)
	row("Notes", r.AdditionalNotes)
	m.viewport.SetContent(b.String())
}
