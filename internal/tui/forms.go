package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// InterviewFormModel holds the raw form input for scheduling or editing.
type InterviewFormModel struct {
	Interviewee   string
	Date          string
	Time          string
	DurationValue string
	DurationUnit  utils.DurationUnit
	Role          string
	Department    string
	Interviewer   string
	Email         string
	Phone         string
	Notes         string

	// keep holds the record's exact clock values and how they were first
	// shown. Unedited fields round-trip unchanged, seconds included.
	keep *keptClock
}

type keptClock struct {
	time, duration           string
	shownTime, shownDuration string
	shownUnit                utils.DurationUnit
}

// FilterFormModel holds the filter pickers.
type FilterFormModel struct {
	Role       string
	Department string
	Unassigned bool
}

// JumpFormModel holds the go-to-date input.
type JumpFormModel struct {
	Date string
}

// ConfirmationFormModel holds a yes/no answer.
type ConfirmationFormModel struct {
	Confirmed bool
}

// newInterviewFormModel returns a blank form for date with a one hour slot.
func newInterviewFormModel(date string) *InterviewFormModel {
	return &InterviewFormModel{
		Date:          date,
		Time:          "09:00",
		DurationValue: "1",
		DurationUnit:  utils.UnitHours,
	}
}

// interviewFormFrom fills a form from an existing record.
func interviewFormFrom(r models.Interview) *InterviewFormModel {
	fm := &InterviewFormModel{
		Interviewee: r.Interviewee,
		Date:        r.Date,
		Time:        shortClock(r.Time),
		Role:        r.Role,
		Department:  r.Department,
		Interviewer: r.Interviewer,
		Email:       r.Email,
		Phone:       r.Phone,
		Notes:       r.AdditionalNotes,
	}
	value, unit, err := utils.SplitDuration(r.Duration)
	if err != nil {
		value, unit = "", utils.UnitMinutes
	}
	fm.DurationValue = value
	fm.DurationUnit = unit
	fm.keep = &keptClock{
		time:          r.Time,
		duration:      r.Duration,
		shownTime:     fm.Time,
		shownDuration: value,
		shownUnit:     unit,
	}
	return fm
}

func (fm InterviewFormModel) timeUnchanged() bool {
	return fm.keep != nil && fm.keep.time != "" && strings.TrimSpace(fm.Time) == fm.keep.shownTime
}

func (fm InterviewFormModel) durationUnchanged() bool {
	return fm.keep != nil && fm.keep.duration != "" &&
		strings.TrimSpace(fm.DurationValue) == fm.keep.shownDuration &&
		fm.DurationUnit == fm.keep.shownUnit
}

func shortClock(t string) string {
	if len(t) == len(constants.ClockFormat) {
		return t[:len(constants.ShortClockFormat)]
	}
	return t
}

// Interview converts the form into a record without an id.
func (fm InterviewFormModel) Interview() (models.Interview, error) {
	if strings.TrimSpace(fm.Interviewee) == "" {
		return models.Interview{}, errors.New("interviewee is required")
	}
	if _, err := utils.ParseDate(fm.Date); err != nil {
		return models.Interview{}, err
	}
	var t, d string
	var err error
	if fm.timeUnchanged() {
		t = fm.keep.time
	} else if t, err = utils.NormalizeTime(fm.Time); err != nil {
		return models.Interview{}, err
	}
	if fm.durationUnchanged() {
		d = fm.keep.duration
	} else if d, err = utils.DurationFromValue(fm.DurationValue, fm.DurationUnit); err != nil {
		return models.Interview{}, err
	}
	return models.Interview{
		Interviewee:     strings.TrimSpace(fm.Interviewee),
		Date:            strings.TrimSpace(fm.Date),
		Time:            t,
		Duration:        d,
		Role:            strings.TrimSpace(fm.Role),
		Department:      strings.TrimSpace(fm.Department),
		Interviewer:     strings.TrimSpace(fm.Interviewer),
		AdditionalNotes: strings.TrimSpace(fm.Notes),
		Email:           strings.TrimSpace(fm.Email),
		Phone:           strings.TrimSpace(fm.Phone),
	}, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validDate(s string) error {
	_, err := utils.ParseDate(s)
	return err
}

func validTime(s string) error {
	_, err := utils.NormalizeTime(s)
	return err
}

// validDuration accepts any positive whole number, plus the value the form
// was opened with so a sub-minute duration can be left alone.
func (fm *InterviewFormModel) validDuration(s string) error {
	if fm.keep != nil && strings.TrimSpace(s) == fm.keep.shownDuration {
		return nil
	}
	_, err := utils.DurationFromValue(s, utils.UnitMinutes)
	return err
}

// newInterviewForm builds the schedule/edit form.
func newInterviewForm(fm *InterviewFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Interviewee").
				Value(&fm.Interviewee).
				Validate(required("interviewee")),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validDate),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(validTime),
			huh.NewInput().
				Title("Duration").
				Value(&fm.DurationValue).
				Validate(fm.validDuration),
			huh.NewSelect[utils.DurationUnit]().
				Title("Unit").
				Options(
					huh.NewOption("Hours", utils.UnitHours),
					huh.NewOption("Minutes", utils.UnitMinutes),
				).
				Value(&fm.DurationUnit),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Role").
				Value(&fm.Role),
			huh.NewInput().
				Title("Department").
				Value(&fm.Department),
			huh.NewInput().
				Title("Interviewer").
				Description("Leave empty while unassigned").
				Value(&fm.Interviewer),
			huh.NewInput().
				Title("Email").
				Value(&fm.Email),
			huh.NewInput().
				Title("Phone").
				Value(&fm.Phone),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// pickerOptions lists "All" followed by values, keeping current selectable
// even when no loaded record carries it any more.
func pickerOptions(values []string, current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("All", constants.FilterAll)}
	if current != "" && current != constants.FilterAll && !slices.Contains(values, current) {
		values = append(slices.Clone(values), current)
	}
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

// newFilterForm builds the role/department/unassigned pickers.
func newFilterForm(fm *FilterFormModel, roles, departments []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Role").
				Options(pickerOptions(roles, fm.Role)...).
				Value(&fm.Role),
			huh.NewSelect[string]().
				Title("Department").
				Options(pickerOptions(departments, fm.Department)...).
				Value(&fm.Department),
			huh.NewConfirm().
				Title("Unassigned only").
				Value(&fm.Unassigned),
		),
	).WithTheme(huh.ThemeDracula())
}

func newJumpForm(fm *JumpFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Go to date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validDate),
		),
	).WithTheme(huh.ThemeDracula())
}

func newConfirmForm(fm *ConfirmationFormModel, message string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
