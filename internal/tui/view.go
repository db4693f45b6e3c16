package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateCreate, constants.StateEdit, constants.StateFilter, constants.StateJumpDate:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	default:
		content = m.viewBrowse()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewSelector(),
		m.viewFilters(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	sel := m.coord.Selector()
	var tabs []string
	for _, mode := range coordinator.Modes {
		title := strings.ToUpper(string(mode[:1])) + string(mode[1:])
		if mode == sel.Mode && !sel.Preset.Active() {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if sel.Preset.Active() {
		tabs = append(tabs, activeTabStyle.Render("Preset: "+string(sel.Preset)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSelector() string {
	line := selectorStyle.Render(m.coord.Selector().String()) +
		mutedStyle.Render(m.coord.CurrentQuery().String())
	switch m.coord.Status() {
	case coordinator.StatusFetching:
		line += " " + m.spinner.View()
	case coordinator.StatusError:
		line += " " + dangerStyle.Render("fetch failed")
	}
	return line
}

func (m Model) viewFilters() string {
	f := m.coord.Filter()
	label := func(name, value string) string {
		if value == "" || value == constants.FilterAll {
			return name + ": all"
		}
		return activeFilterStyle.Render(name + ": " + value)
	}
	unassigned := "unassigned only: no"
	if f.UnassignedOnly {
		unassigned = activeFilterStyle.Render("unassigned only: yes")
	}
	shown := fmt.Sprintf("%d of %d shown", len(m.coord.Visible()), len(m.coord.Records()))
	return filterStyle.Render(strings.Join([]string{
		label("role", f.Role),
		label("department", f.Department),
		unassigned,
		shown,
	}, " | "))
}

func (m Model) viewBrowse() string {
	table := docStyle.Render(m.table.View())
	if m.table.Len() == 0 || m.height <= 24 {
		return table
	}
	return lipgloss.JoinVertical(lipgloss.Left, table, detailStyle.Render(m.detail.View()))
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render(" " + m.status)
	}
	return successStyle.Render(" " + m.status)
}

func (m Model) viewConfirmDelete() string {
	body := ""
	if m.form != nil {
		body = m.form.View()
	}
	return lipgloss.Place(m.width, max(m.height-8, 6),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("This cannot be undone."),
			"",
			body,
		),
	)
}
