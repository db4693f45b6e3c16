package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
	apperrors "github.com/julianstephens/interviewdesk/internal/errors"
	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/tui/components/records"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

const waitingStatus = "Waiting for the previous change to finish"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.coord.Status() != coordinator.StatusFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchMsg:
		m.applyFetch(msg)
		return m, nil

	case createdMsg:
		m.onCreated(msg)
		return m, nil

	case updatedMsg:
		m.onUpdated(msg)
		return m, nil

	case deletedMsg:
		m.onDeleted(msg)
		return m, nil

	case constants.ConfirmationMsg:
		m.confirmForm = &ConfirmationFormModel{}
		m.pendingAction = msg.Action
		m.form = newConfirmForm(m.confirmForm, msg.Message)
		m.state = constants.StateConfirmDelete
		return m, m.form.Init()

	case records.AddMsg:
		return m, m.openCreate()

	case records.EditMsg:
		return m, m.openEdit(msg.Interview)

	case records.DeleteMsg:
		return m, m.confirmDelete(msg.Interview)
	}

	switch m.state {
	case constants.StateCreate, constants.StateEdit, constants.StateFilter,
		constants.StateJumpDate, constants.StateConfirmDelete:
		return m.updateForm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	sel := m.coord.Selector()
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Mode):
		return m, m.dispatch(coordinator.ChangeMode(sel.Mode.Next()))
	case key.Matches(keyMsg, m.keys.Prev):
		return m, m.step(-1)
	case key.Matches(keyMsg, m.keys.Next):
		return m, m.step(1)
	case key.Matches(keyMsg, m.keys.Today):
		return m, m.dispatch(coordinator.ChangeDate(utils.Today()))
	case key.Matches(keyMsg, m.keys.Preset):
		return m, m.dispatch(coordinator.ChangePreset(nextPreset(sel.Preset)))
	case key.Matches(keyMsg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(keyMsg, m.keys.Jump):
		return m, m.openJump()
	case key.Matches(keyMsg, m.keys.Filter):
		return m, m.openFilter()
	case key.Matches(keyMsg, m.keys.Unassigned):
		only := !m.coord.Filter().UnassignedOnly
		if m.coord.SetFilter(coordinator.FilterChange{UnassignedOnly: &only}) {
			m.syncTable()
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.ResetFilter):
		if m.coord.ResetFilter() {
			m.syncTable()
		}
		return m, nil
	case m.mutating && (key.Matches(keyMsg, m.keys.Add) ||
		key.Matches(keyMsg, m.keys.Edit) ||
		key.Matches(keyMsg, m.keys.Delete)):
		m.setStatus(waitingStatus)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.syncDetail()
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}
	if m.form == nil {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, tea.Batch(cmd, m.submitForm())
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) submitForm() tea.Cmd {
	switch m.state {
	case constants.StateCreate:
		return m.submitCreate()
	case constants.StateEdit:
		return m.submitEdit()
	case constants.StateFilter:
		m.submitFilter()
		return nil
	case constants.StateJumpDate:
		return m.submitJump()
	case constants.StateConfirmDelete:
		return m.submitConfirm()
	}
	m.closeForm()
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.interviewForm = nil
	m.filterForm = nil
	m.jumpForm = nil
	m.confirmForm = nil
	m.pendingAction = nil
	m.editing = nil
	m.state = constants.StateBrowse
}

// dispatch applies a selector change and starts the fetch it implies.
// No-op changes start nothing.
func (m *Model) dispatch(change coordinator.SelectorChange) tea.Cmd {
	f, ok := m.coord.DispatchView(change)
	if !ok {
		return nil
	}
	return tea.Batch(m.fetch(f), m.spinner.Tick)
}

func (m *Model) refresh() tea.Cmd {
	return tea.Batch(m.fetch(m.coord.Refresh()), m.spinner.Tick)
}

func (m *Model) step(n int) tea.Cmd {
	sel := m.coord.Selector()
	sel.Step(n)
	return m.dispatch(coordinator.ChangeDate(sel.Anchor))
}

func nextPreset(p coordinator.Preset) coordinator.Preset {
	i := slices.Index(coordinator.Presets, p)
	return coordinator.Presets[(i+1)%len(coordinator.Presets)]
}

func (m *Model) applyFetch(msg fetchMsg) {
	if !m.coord.ApplyFetch(msg.res) {
		return
	}
	if err := m.coord.Err(); err != nil {
		m.setError(apperrors.Describe(err))
		return
	}
	if m.statusErr {
		m.setStatus("")
	}
	m.syncTable()
}

func (m *Model) openCreate() tea.Cmd {
	if m.mutating {
		m.setStatus(waitingStatus)
		return nil
	}
	anchor := m.coord.Selector().Anchor
	m.interviewForm = newInterviewFormModel(utils.FormatDate(anchor))
	m.editing = nil
	m.form = newInterviewForm(m.interviewForm, "Schedule interview")
	m.state = constants.StateCreate
	return m.form.Init()
}

func (m *Model) openEdit(r models.Interview) tea.Cmd {
	if m.mutating {
		m.setStatus(waitingStatus)
		return nil
	}
	m.editing = &r
	m.interviewForm = interviewFormFrom(r)
	m.form = newInterviewForm(m.interviewForm, fmt.Sprintf("Edit interview #%s", r.IDString()))
	m.state = constants.StateEdit
	return m.form.Init()
}

func (m *Model) confirmDelete(r models.Interview) tea.Cmd {
	if m.mutating {
		m.setStatus(waitingStatus)
		return nil
	}
	if !r.HasID() {
		m.setError("Cannot delete an interview that was never saved")
		return nil
	}
	message := fmt.Sprintf("Delete the interview with %s on %s?", r.Interviewee, r.Date)
	deleteCmd := m.deleteCmd(r)
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: message,
			Action:  func() tea.Cmd { return deleteCmd },
		}
	}
}

func (m *Model) openFilter() tea.Cmd {
	f := m.coord.Filter()
	m.filterForm = &FilterFormModel{
		Role:       f.Role,
		Department: f.Department,
		Unassigned: f.UnassignedOnly,
	}
	m.form = newFilterForm(m.filterForm, m.coord.RoleOptions(), m.coord.DepartmentOptions())
	m.state = constants.StateFilter
	return m.form.Init()
}

func (m *Model) openJump() tea.Cmd {
	m.jumpForm = &JumpFormModel{Date: utils.FormatDate(m.coord.Selector().Anchor)}
	m.form = newJumpForm(m.jumpForm)
	m.state = constants.StateJumpDate
	return m.form.Init()
}

func (m *Model) submitCreate() tea.Cmd {
	fm := m.interviewForm
	m.closeForm()
	if fm == nil {
		return nil
	}
	draft, err := fm.Interview()
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	if m.mutating {
		m.setStatus(waitingStatus)
		return nil
	}
	m.mutating = true
	m.setStatus(fmt.Sprintf("Scheduling %s...", draft.Interviewee))
	return m.createCmd(draft)
}

func (m *Model) submitEdit() tea.Cmd {
	fm, original := m.interviewForm, m.editing
	m.closeForm()
	if fm == nil || original == nil {
		return nil
	}
	edited, err := fm.Interview()
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	edited.ID = original.ID
	patch, err := models.Diff(*original, edited)
	if err != nil {
		m.setError(err.Error())
		return nil
	}

	switch coordinator.CheckUpdate(original.ID, patch) {
	case coordinator.OutcomeNoChanges:
		m.setStatus("No changes to save")
		return nil
	case coordinator.OutcomeMissingID:
		m.setError("Cannot update an interview that was never saved")
		return nil
	}
	if m.mutating {
		m.setStatus(waitingStatus)
		return nil
	}
	m.mutating = true
	m.setStatus(fmt.Sprintf("Saving %s...", edited.Interviewee))
	return m.updateCmd(original.ID, patch)
}

func (m *Model) submitFilter() {
	fm := m.filterForm
	m.closeForm()
	if fm == nil {
		return
	}
	if m.coord.SetFilter(coordinator.FilterChange{
		UnassignedOnly: &fm.Unassigned,
		Role:           &fm.Role,
		Department:     &fm.Department,
	}) {
		m.syncTable()
	}
}

func (m *Model) submitJump() tea.Cmd {
	fm := m.jumpForm
	m.closeForm()
	if fm == nil {
		return nil
	}
	d, err := utils.ParseDate(fm.Date)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return m.dispatch(coordinator.ChangeDate(d))
}

func (m *Model) submitConfirm() tea.Cmd {
	confirmed := m.confirmForm != nil && m.confirmForm.Confirmed
	action := m.pendingAction
	m.closeForm()
	if !confirmed || action == nil {
		return nil
	}
	if m.mutating {
		m.setStatus(waitingStatus)
		return nil
	}
	m.mutating = true
	m.setStatus("Deleting...")
	return action()
}

func (m *Model) onCreated(msg createdMsg) {
	m.mutating = false
	if msg.err != nil {
		logger.Warn("Create failed", "error", msg.err)
		m.setError("Failed to schedule interview. " + apperrors.Describe(msg.err))
		return
	}
	m.coord.CommitCreate(msg.record)
	m.syncTable()
	m.setStatus(fmt.Sprintf("Scheduled %s (#%s)", msg.record.Interviewee, msg.record.IDString()))
}

func (m *Model) onUpdated(msg updatedMsg) {
	m.mutating = false
	if msg.err != nil {
		logger.Warn("Update failed", "error", msg.err)
		m.setError("Failed to save changes. " + apperrors.Describe(msg.err))
		return
	}
	if msg.outcome != coordinator.OutcomeApplied {
		m.setStatus("Nothing to save: " + msg.outcome.String())
		return
	}
	m.coord.CommitUpdate(msg.record)
	m.syncTable()
	m.setStatus(fmt.Sprintf("Updated %s (#%s)", msg.record.Interviewee, msg.record.IDString()))
}

func (m *Model) onDeleted(msg deletedMsg) {
	m.mutating = false
	if msg.err != nil {
		logger.Warn("Delete failed", "error", msg.err)
		m.setError("Failed to delete interview. " + apperrors.Describe(msg.err))
		return
	}
	m.coord.CommitDelete(msg.record)
	m.syncTable()
	m.setStatus(fmt.Sprintf("Deleted %s (#%s)", msg.record.Interviewee, msg.record.IDString()))
}
