package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/models"
)

// fetchMsg carries a fetch result back to the update loop. The generation
// inside decides whether it still applies.
type fetchMsg struct {
	res coordinator.FetchResult
}

type createdMsg struct {
	record models.Interview
	err    error
}

type updatedMsg struct {
	record  models.Interview
	outcome coordinator.Outcome
	err     error
}

type deletedMsg struct {
	record models.Interview
	err    error
}

// The commands below run off the update loop and only call the coordinator
// methods that touch no state. Results are committed in Update.

func (m Model) fetch(f coordinator.Fetch) tea.Cmd {
	c, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return fetchMsg{res: c.Run(ctx, f)}
	}
}

func (m Model) createCmd(draft models.Interview) tea.Cmd {
	c, ctx := m.coord, m.ctx
	return func() tea.Msg {
		created, err := c.CreateRemote(ctx, draft)
		return createdMsg{record: created, err: err}
	}
}

func (m Model) updateCmd(id *int64, patch models.Patch) tea.Cmd {
	c, ctx := m.coord, m.ctx
	return func() tea.Msg {
		updated, outcome, err := c.UpdateRemote(ctx, id, patch)
		return updatedMsg{record: updated, outcome: outcome, err: err}
	}
}

func (m Model) deleteCmd(record models.Interview) tea.Cmd {
	c, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return deletedMsg{record: record, err: c.DeleteRemote(ctx, record)}
	}
}
