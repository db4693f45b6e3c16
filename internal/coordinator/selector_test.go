package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june10 = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestSelectorNoOps(t *testing.T) {
	s := NewSelector(june10)

	assert.False(t, s.SetMode(ModeDay), "same mode is a no-op")
	assert.False(t, s.SetDate(june10.Add(13*time.Hour)), "same calendar day is a no-op")
	assert.False(t, s.SetPreset(PresetNone), "same preset is a no-op")
	assert.False(t, s.SetPreset(""), "empty preset means none")

	assert.True(t, s.SetMode(ModeWeek))
	assert.True(t, s.SetDate(june10.AddDate(0, 0, 1)))
}

func TestSelectorPresetPriority(t *testing.T) {
	s := NewSelector(june10)

	require.True(t, s.SetPreset(PresetWeek))
	assert.Equal(t, ModeDay, s.Mode, "preset leaves mode alone")
	assert.True(t, s.Anchor.Equal(june10), "preset leaves anchor alone")

	// Re-selecting the current mode is a real change while a preset is active.
	require.True(t, s.SetMode(ModeDay))
	assert.Equal(t, PresetNone, s.Preset)

	require.True(t, s.SetPreset(PresetMonth))
	require.True(t, s.SetDate(june10))
	assert.Equal(t, PresetNone, s.Preset, "setting the date clears the preset")
}

func TestSelectorChangeApply(t *testing.T) {
	s := NewSelector(june10)

	assert.False(t, SelectorChange{}.Apply(&s))
	assert.False(t, ChangeMode(ModeDay).Apply(&s))

	week := ModeWeek
	next := june10.AddDate(0, 0, 3)
	preset := PresetWorkWeek
	assert.True(t, SelectorChange{Mode: &week, Date: &next, Preset: &preset}.Apply(&s))
	assert.Equal(t, ModeWeek, s.Mode)
	assert.True(t, s.Anchor.Equal(next))
	assert.Equal(t, PresetWorkWeek, s.Preset)
}

func TestSelectorStep(t *testing.T) {
	tests := []struct {
		name string
		mode ViewMode
		n    int
		want string
	}{
		{name: "day forward", mode: ModeDay, n: 1, want: "2024-06-11"},
		{name: "day back", mode: ModeDay, n: -1, want: "2024-06-09"},
		{name: "week forward", mode: ModeWeek, n: 1, want: "2024-06-17"},
		{name: "month forward", mode: ModeMonth, n: 1, want: "2024-07-01"},
		{name: "month back across year", mode: ModeMonth, n: -6, want: "2023-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ViewSelector{Mode: tt.mode, Anchor: june10, Preset: PresetWeek}
			require.True(t, s.Step(tt.n))
			assert.Equal(t, tt.want, s.Anchor.Format("2006-01-02"))
			assert.Equal(t, PresetNone, s.Preset)
		})
	}
}

func TestParseModeAndPreset(t *testing.T) {
	m, err := ParseMode(" Week ")
	require.NoError(t, err)
	assert.Equal(t, ModeWeek, m)
	_, err = ParseMode("year")
	assert.Error(t, err)

	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, PresetNone, p)
	p, err = ParsePreset("work-week")
	require.NoError(t, err)
	assert.Equal(t, PresetWorkWeek, p)
	_, err = ParsePreset("fortnight")
	assert.Error(t, err)

	assert.Equal(t, ModeWeek, ModeDay.Next())
	assert.Equal(t, ModeDay, ModeMonth.Next())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		selector  ViewSelector
		weekStart time.Weekday
		want      string
	}{
		{
			name:     "day",
			selector: ViewSelector{Mode: ModeDay, Anchor: june10, Preset: PresetNone},
			want:     "GET /interview/date/?date=2024-06-10",
		},
		{
			name:     "week with sunday start",
			selector: ViewSelector{Mode: ModeWeek, Anchor: june10, Preset: PresetNone},
			want:     "GET /interview/date-range?start_date=2024-06-09&end_date=2024-06-15",
		},
		{
			name:      "week with monday start",
			selector:  ViewSelector{Mode: ModeWeek, Anchor: june10, Preset: PresetNone},
			weekStart: time.Monday,
			want:      "GET /interview/date-range?start_date=2024-06-10&end_date=2024-06-16",
		},
		{
			name:     "month",
			selector: ViewSelector{Mode: ModeMonth, Anchor: june10, Preset: PresetNone},
			want:     "GET /interview/month?month=06&year=2024",
		},
		{
			name:     "preset beats day mode",
			selector: ViewSelector{Mode: ModeDay, Anchor: june10, Preset: PresetWeek},
			want:     "GET /interview/week/",
		},
		{
			name:     "work-week preset beats month mode",
			selector: ViewSelector{Mode: ModeMonth, Anchor: june10, Preset: PresetWorkWeek},
			want:     "GET /interview/work-week/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.selector, tt.weekStart).String())
		})
	}
}
