package coordinator

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/interviewdesk/internal/utils"
)

// ViewMode is the calendar granularity the user is looking at.
type ViewMode string

const (
	ModeDay   ViewMode = "day"
	ModeWeek  ViewMode = "week"
	ModeMonth ViewMode = "month"
)

// Modes lists the view modes in cycling order.
var Modes = []ViewMode{ModeDay, ModeWeek, ModeMonth}

// ParseMode parses a view mode name.
func ParseMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDay, ModeWeek, ModeMonth:
		return m, nil
	}
	return "", fmt.Errorf("invalid view mode %q (want day, week or month)", s)
}

// Next returns the mode after m, wrapping around.
func (m ViewMode) Next() ViewMode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeDay
}

// Preset is a server-defined date window.
type Preset string

const (
	PresetNone     Preset = "none"
	PresetWeek     Preset = "week"
	PresetWorkWeek Preset = "work-week"
	PresetMonth    Preset = "month"
)

// Presets lists every preset, none first.
var Presets = []Preset{PresetNone, PresetWeek, PresetWorkWeek, PresetMonth}

// ParsePreset parses a preset name; the empty string is none.
func ParsePreset(s string) (Preset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PresetNone, nil
	}
	switch p := Preset(s); p {
	case PresetNone, PresetWeek, PresetWorkWeek, PresetMonth:
		return p, nil
	}
	return "", fmt.Errorf("invalid preset %q (want none, week, work-week or month)", s)
}

// Active reports whether p takes fetch priority.
func (p Preset) Active() bool {
	return p != "" && p != PresetNone
}

// ViewSelector is the value the dispatcher resolves into a query.
type ViewSelector struct {
	Mode   ViewMode
	Anchor time.Time
	Preset Preset
}

// NewSelector returns a day view anchored on date with no preset.
func NewSelector(date time.Time) ViewSelector {
	return ViewSelector{Mode: ModeDay, Anchor: utils.TruncateDay(date), Preset: PresetNone}
}

// SetMode switches the view mode and clears any preset. It reports false when
// nothing changed.
func (s *ViewSelector) SetMode(mode ViewMode) bool {
	if s.Mode == mode && !s.Preset.Active() {
		return false
	}
	s.Mode = mode
	s.Preset = PresetNone
	return true
}

// SetDate moves the anchor and clears any preset. It reports false when
// nothing changed.
func (s *ViewSelector) SetDate(date time.Time) bool {
	date = utils.TruncateDay(date)
	if s.Anchor.Equal(date) && !s.Preset.Active() {
		return false
	}
	s.Anchor = date
	s.Preset = PresetNone
	return true
}

// SetPreset selects a preset window. Mode and anchor are left alone. It
// reports false when nothing changed.
func (s *ViewSelector) SetPreset(p Preset) bool {
	if p == "" {
		p = PresetNone
	}
	if s.Preset == p {
		return false
	}
	s.Preset = p
	return true
}

// Step moves the anchor n periods of the current mode forward (or back when
// n is negative). Stepping always leaves preset mode.
func (s *ViewSelector) Step(n int) bool {
	var next time.Time
	switch s.Mode {
	case ModeWeek:
		next = s.Anchor.AddDate(0, 0, 7*n)
	case ModeMonth:
		first := time.Date(s.Anchor.Year(), s.Anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = first.AddDate(0, n, 0)
	default:
		next = s.Anchor.AddDate(0, 0, n)
	}
	return s.SetDate(next)
}

// String renders the selector for the status bar.
func (s ViewSelector) String() string {
	if s.Preset.Active() {
		return "preset " + string(s.Preset)
	}
	return fmt.Sprintf("%s %s", s.Mode, utils.FormatDate(s.Anchor))
}

// SelectorChange is one user action against the selector. Nil fields are left
// alone.
type SelectorChange struct {
	Mode   *ViewMode
	Date   *time.Time
	Preset *Preset
}

// ChangeMode builds a change that sets the view mode.
func ChangeMode(m ViewMode) SelectorChange {
	return SelectorChange{Mode: &m}
}

// ChangeDate builds a change that sets the anchor date.
func ChangeDate(d time.Time) SelectorChange {
	return SelectorChange{Date: &d}
}

// ChangePreset builds a change that sets the preset.
func ChangePreset(p Preset) SelectorChange {
	return SelectorChange{Preset: &p}
}

// Apply folds the change into s in mode, date, preset order and reports
// whether the resulting selector differs from the original.
func (c SelectorChange) Apply(s *ViewSelector) bool {
	before := *s
	if c.Mode != nil {
		s.SetMode(*c.Mode)
	}
	if c.Date != nil {
		s.SetDate(*c.Date)
	}
	if c.Preset != nil {
		s.SetPreset(*c.Preset)
	}
	return !before.equal(*s)
}

func (s ViewSelector) equal(o ViewSelector) bool {
	return s.Mode == o.Mode && s.Anchor.Equal(o.Anchor) && s.Preset == o.Preset
}
