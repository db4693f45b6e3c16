package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/remote"
	"github.com/julianstephens/interviewdesk/internal/tui/components/records"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

// stubSource answers list calls from canned results keyed by endpoint.
type stubSource struct {
	mu        sync.Mutex
	lists     map[string][]models.Interview
	errs      map[string]error
	createErr error
	nextID    int64
	patches   []models.Patch
}

func newStub() *stubSource {
	return &stubSource{
		lists:  make(map[string][]models.Interview),
		errs:   make(map[string]error),
		nextID: 100,
	}
}

func (s *stubSource) list(key string) ([]models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[key]; err != nil {
		return nil, err
	}
	return append([]models.Interview(nil), s.lists[key]...), nil
}

func (s *stubSource) ByDate(_ context.Context, d time.Time) ([]models.Interview, error) {
	return s.list("date:" + utils.FormatDate(d))
}

func (s *stubSource) ByRange(_ context.Context, start, end time.Time) ([]models.Interview, error) {
	return s.list("range:" + utils.FormatDate(start) + ":" + utils.FormatDate(end))
}

func (s *stubSource) ByMonth(_ context.Context, month time.Month, year int) ([]models.Interview, error) {
	return s.list(fmt.Sprintf("month:%d-%02d", year, int(month)))
}

func (s *stubSource) ByPreset(_ context.Context, preset string) ([]models.Interview, error) {
	return s.list("preset:" + preset)
}

func (s *stubSource) Create(_ context.Context, draft models.Interview) (models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return models.Interview{}, s.createErr
	}
	s.nextID++
	draft.ID = models.NewID(s.nextID)
	return draft, nil
}

func (s *stubSource) Update(_ context.Context, id int64, patch models.Patch) (models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches = append(s.patches, patch)
	for _, rs := range s.lists {
		for _, r := range rs {
			if r.ID != nil && *r.ID == id {
				return r.Apply(patch)
			}
		}
	}
	return models.Interview{}, &remote.StatusError{Status: 404}
}

func (s *stubSource) Delete(_ context.Context, id int64) error {
	return nil
}

func rec(id int64, name, date, interviewer string) models.Interview {
	return models.Interview{
		ID:          models.NewID(id),
		Interviewee: name,
		Date:        date,
		Time:        "09:00:00",
		Duration:    "01:00:00",
		Role:        "Backend",
		Department:  "Platform",
		Interviewer: interviewer,
	}
}

func newTestModel(t *testing.T, src *stubSource) Model {
	t.Helper()
	c := coordinator.New(src, coordinator.Options{Today: monday})
	m := NewModel(context.Background(), c)
	return drain(t, m, m.Init())
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drain feeds the console's own messages produced by cmd back into m until
// nothing is left. Spinner ticks and form commands are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case fetchMsg, createdMsg, updatedMsg, deletedMsg, constants.ConfirmationMsg,
			records.AddMsg, records.EditMsg, records.DeleteMsg:
		default:
			continue
		}
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		if m.state == constants.StateBrowse {
			m = drain(t, m, nextCmd)
		}
	}
	return m
}

func press(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

func names(rs []models.Interview) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Interviewee)
	}
	return out
}

func TestInitLoadsDayView(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{
		rec(1, "ada", "2024-06-10", ""),
		rec(2, "grace", "2024-06-10", "bob"),
	}

	m := newTestModel(t, src)
	assert.Equal(t, coordinator.StatusIdle, m.coord.Status())
	assert.Equal(t, 2, m.table.Len())
	sel, ok := m.table.Selected()
	require.True(t, ok)
	assert.Equal(t, "ada", sel.Interviewee)
}

func TestModeKeyDispatchesAndDropsStaleResults(t *testing.T) {
	src := newStub()
	src.lists["range:2024-06-09:2024-06-15"] = []models.Interview{rec(3, "week", "2024-06-11", "")}
	src.lists["month:2024-06"] = []models.Interview{rec(4, "month", "2024-06-20", "")}
	m := newTestModel(t, src)

	m, toWeek := press(m, "m")
	require.NotNil(t, toWeek)
	m, toMonth := press(m, "m")
	require.NotNil(t, toMonth)

	m = drain(t, m, toMonth)
	m = drain(t, m, toWeek)

	assert.Equal(t, coordinator.ModeMonth, m.coord.Selector().Mode)
	assert.Equal(t, []string{"month"}, names(m.coord.Visible()))
}

func TestStepAndPresetKeys(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-11"] = []models.Interview{rec(5, "tuesday", "2024-06-11", "")}
	src.lists["preset:week"] = []models.Interview{rec(6, "preset", "2024-06-12", "")}
	m := newTestModel(t, src)

	m, cmd := press(m, "l")
	m = drain(t, m, cmd)
	assert.Equal(t, []string{"tuesday"}, names(m.coord.Visible()))

	m, cmd = press(m, "p")
	m = drain(t, m, cmd)
	assert.Equal(t, coordinator.PresetWeek, m.coord.Selector().Preset)
	assert.Equal(t, []string{"preset"}, names(m.coord.Visible()))
}

func TestFetchErrorKeepsRowsUntilRefresh(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{rec(1, "ada", "2024-06-10", "")}
	m := newTestModel(t, src)

	src.errs["date:2024-06-10"] = &remote.TransportError{Op: "GET", Err: fmt.Errorf("connection refused")}
	m, cmd := press(m, "r")
	m = drain(t, m, cmd)

	assert.Equal(t, coordinator.StatusError, m.coord.Status())
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "Could not reach")
	assert.Equal(t, 1, m.table.Len(), "last known rows stay visible")

	delete(src.errs, "date:2024-06-10")
	m, cmd = press(m, "r")
	m = drain(t, m, cmd)
	assert.Equal(t, coordinator.StatusIdle, m.coord.Status())
	_, isErr = m.Status()
	assert.False(t, isErr)
}

func TestFilterKeysDoNotFetch(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{
		rec(1, "ada", "2024-06-10", ""),
		rec(2, "grace", "2024-06-10", "bob"),
	}
	m := newTestModel(t, src)
	gen := m.coord.Generation()

	m, cmd := press(m, "u")
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"ada"}, names(m.coord.Visible()))
	assert.Equal(t, 1, m.table.Len())

	m, cmd = press(m, "x")
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.table.Len())
	assert.Equal(t, gen, m.coord.Generation())
}

func TestFilterFormSubmit(t *testing.T) {
	src := newStub()
	a := rec(1, "ada", "2024-06-10", "")
	b := rec(2, "grace", "2024-06-10", "")
	b.Role = "Frontend"
	src.lists["date:2024-06-10"] = []models.Interview{a, b}
	m := newTestModel(t, src)

	m.openFilter()
	require.Equal(t, constants.StateFilter, m.state)
	m.filterForm.Role = "Frontend"
	m.submitFilter()

	assert.Equal(t, constants.StateBrowse, m.state)
	assert.Equal(t, []string{"grace"}, names(m.coord.Visible()))
}

func TestJumpDate(t *testing.T) {
	src := newStub()
	src.lists["date:2024-07-01"] = []models.Interview{rec(9, "july", "2024-07-01", "")}
	m := newTestModel(t, src)

	m.openJump()
	m.jumpForm.Date = "2024-07-01"
	m = drain(t, m, m.submitJump())
	assert.Equal(t, []string{"july"}, names(m.coord.Visible()))
}

func TestCreateFlow(t *testing.T) {
	src := newStub()
	m := newTestModel(t, src)

	m.openCreate()
	require.Equal(t, constants.StateCreate, m.state)
	assert.Equal(t, "2024-06-10", m.interviewForm.Date)
	m.interviewForm.Interviewee = "Ada"
	m.interviewForm.Time = "9:30"
	m.interviewForm.DurationValue = "45"
	m.interviewForm.DurationUnit = utils.UnitMinutes

	cmd := m.submitCreate()
	require.NotNil(t, cmd)
	assert.True(t, m.mutating)

	assert.Nil(t, m.openCreate(), "a second mutation waits for the first")
	status, _ := m.Status()
	assert.Equal(t, waitingStatus, status)

	m = drain(t, m, cmd)
	assert.False(t, m.mutating)
	require.Equal(t, 1, m.table.Len())
	created := m.coord.Visible()[0]
	assert.Equal(t, int64(101), *created.ID)
	assert.Equal(t, "09:30:00", created.Time)
	assert.Equal(t, "00:45:00", created.Duration)
	status, isErr := m.Status()
	assert.False(t, isErr)
	assert.Contains(t, status, "Scheduled Ada")
}

func TestCreateRejected(t *testing.T) {
	src := newStub()
	src.createErr = &remote.ValidationError{Status: 400, Fields: map[string][]string{"date": {"Date has wrong format."}}}
	m := newTestModel(t, src)

	m.openCreate()
	m.interviewForm.Interviewee = "Ada"
	m = drain(t, m, m.submitCreate())

	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "date")
	assert.Zero(t, m.table.Len())
}

func TestEditWithoutChangesSendsNothing(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{rec(1, "ada", "2024-06-10", "")}
	m := newTestModel(t, src)

	m.openEdit(m.coord.Visible()[0])
	assert.Nil(t, m.submitEdit())
	status, _ := m.Status()
	assert.Equal(t, "No changes to save", status)
	assert.Empty(t, src.patches)
}

func TestEditKeepsSecondsWhenUntouched(t *testing.T) {
	cases := []struct {
		name, clock, duration string
	}{
		{"clock seconds", "09:15:30", "01:00:00"},
		{"duration seconds", "09:00:00", "00:45:30"},
		{"sub-minute duration", "09:00:00", "00:00:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rec(1, "Ada", "2024-06-10", "")
			r.Time = tc.clock
			r.Duration = tc.duration
			src := newStub()
			src.lists["date:2024-06-10"] = []models.Interview{r}
			m := newTestModel(t, src)

			m.openEdit(m.coord.Visible()[0])
			assert.NoError(t, m.interviewForm.validDuration(m.interviewForm.DurationValue))
			assert.Nil(t, m.submitEdit())
			status, isErr := m.Status()
			assert.False(t, isErr)
			assert.Equal(t, "No changes to save", status)
			assert.Empty(t, src.patches)
		})
	}
}

func TestEditChangedClockDropsSeconds(t *testing.T) {
	r := rec(1, "Ada", "2024-06-10", "")
	r.Time = "09:15:30"
	r.Duration = "00:45:30"
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{r}
	m := newTestModel(t, src)

	m.openEdit(m.coord.Visible()[0])
	m.interviewForm.Time = "10:00"
	m = drain(t, m, m.submitEdit())

	require.Len(t, src.patches, 1)
	assert.Equal(t, []string{"time"}, src.patches[0].Fields())
	assert.Equal(t, "10:00:00", m.coord.Visible()[0].Time)
	assert.Equal(t, "00:45:30", m.coord.Visible()[0].Duration)
}

func TestEditSendsSparsePatch(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{rec(1, "ada", "2024-06-10", "")}
	m := newTestModel(t, src)

	m.openEdit(m.coord.Visible()[0])
	m.interviewForm.Interviewer = "Eve"
	m = drain(t, m, m.submitEdit())

	require.Len(t, src.patches, 1)
	assert.Equal(t, []string{"interviewer"}, src.patches[0].Fields())
	assert.Equal(t, "Eve", m.coord.Visible()[0].Interviewer)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{rec(1, "ada", "2024-06-10", "")}
	m := newTestModel(t, src)

	m = drain(t, m, m.confirmDelete(m.coord.Visible()[0]))
	require.Equal(t, constants.StateConfirmDelete, m.state)

	m.confirmForm.Confirmed = false
	assert.Nil(t, m.submitConfirm())
	assert.Equal(t, 1, m.table.Len())

	m = drain(t, m, m.confirmDelete(m.coord.Visible()[0]))
	m.confirmForm.Confirmed = true
	m = drain(t, m, m.submitConfirm())
	assert.Zero(t, m.table.Len())
	assert.Empty(t, m.coord.Records())
}

func TestDeleteUnsavedRecord(t *testing.T) {
	m := newTestModel(t, newStub())
	assert.Nil(t, m.confirmDelete(models.Interview{Interviewee: "draft"}))
	_, isErr := m.Status()
	assert.True(t, isErr)
}

func TestNextPresetCycles(t *testing.T) {
	p := coordinator.PresetNone
	var seen []coordinator.Preset
	for range coordinator.Presets {
		p = nextPreset(p)
		seen = append(seen, p)
	}
	assert.Equal(t, []coordinator.Preset{
		coordinator.PresetWeek, coordinator.PresetWorkWeek, coordinator.PresetMonth, coordinator.PresetNone,
	}, seen)
}

func TestInterviewFormConversion(t *testing.T) {
	r := rec(1, "ada", "2024-06-10", "bob")
	r.Duration = "01:30:00"
	r.Time = "14:15:00"

	fm := interviewFormFrom(r)
	assert.Equal(t, "14:15", fm.Time)
	assert.Equal(t, "90", fm.DurationValue)
	assert.Equal(t, utils.UnitMinutes, fm.DurationUnit)

	back, err := fm.Interview()
	require.NoError(t, err)
	back.ID = r.ID
	assert.Equal(t, r, back)

	fm.Interviewee = "  "
	_, err = fm.Interview()
	assert.Error(t, err)
}

func TestViewRendersChrome(t *testing.T) {
	src := newStub()
	src.lists["date:2024-06-10"] = []models.Interview{rec(1, "ada", "2024-06-10", "")}
	m := newTestModel(t, src)

	out := m.View()
	assert.Contains(t, out, "Day")
	assert.Contains(t, out, "GET /interview/date/?date=2024-06-10")
	assert.Contains(t, out, "1 of 1 shown")
}
