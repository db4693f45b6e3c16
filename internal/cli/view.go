package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/tui/components/records"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// ViewFlags picks the window and the filters for one-shot commands.
type ViewFlags struct {
	Mode       string `help:"View mode: day, week or month." default:"day" enum:"day,week,month"`
	Date       string `help:"Anchor date (YYYY-MM-DD). Defaults to today." placeholder:"YYYY-MM-DD"`
	Preset     string `help:"Server preset: week, work-week or month. Takes priority over mode and date." placeholder:"PRESET"`
	Role       string `help:"Only show this role." default:"all"`
	Department string `help:"Only show this department." default:"all"`
	Unassigned bool   `help:"Only show interviews without an interviewer."`
}

// SelectorChange turns the flags into one selector change.
func (f ViewFlags) SelectorChange() (coordinator.SelectorChange, error) {
	mode, err := coordinator.ParseMode(f.Mode)
	if err != nil {
		return coordinator.SelectorChange{}, err
	}
	date := utils.Today()
	if f.Date != "" {
		if date, err = utils.ParseDate(f.Date); err != nil {
			return coordinator.SelectorChange{}, err
		}
	}
	preset, err := coordinator.ParsePreset(f.Preset)
	if err != nil {
		return coordinator.SelectorChange{}, err
	}
	return coordinator.SelectorChange{Mode: &mode, Date: &date, Preset: &preset}, nil
}

func (f ViewFlags) FilterChange() coordinator.FilterChange {
	return coordinator.FilterChange{
		UnassignedOnly: &f.Unassigned,
		Role:           &f.Role,
		Department:     &f.Department,
	}
}

// Load fetches the selected view into c and applies the filters.
func (f ViewFlags) Load(ctx context.Context, c *coordinator.Coordinator) ([]models.Interview, error) {
	change, err := f.SelectorChange()
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx, change); err != nil {
		return nil, err
	}
	c.SetFilter(f.FilterChange())
	return c.Visible(), nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderTable draws rs with the same columns as the console.
func RenderTable(rs []models.Interview) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(records.Headers...)
	for _, r := range rs {
		t.Row(records.Cells(r)...)
	}
	return t.String()
}

// Summary is the one-line description printed above a listing.
func Summary(c *coordinator.Coordinator) string {
	parts := []string{c.Selector().String(), dimStyle.Render(c.CurrentQuery().String())}
	if f := c.Filter(); !f.IsDefault() {
		parts = append(parts, fmt.Sprintf("filters: role=%s department=%s unassigned=%t", f.Role, f.Department, f.UnassignedOnly))
	}
	parts = append(parts, fmt.Sprintf("%d of %d shown", len(c.Visible()), len(c.Records())))
	return strings.Join(parts, "  ")
}

// ParseDuration accepts HH:MM:SS or a Go duration such as 45m or 1h30m and
// returns the HH:MM:SS form.
func ParseDuration(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utils.ValidateClock(s) {
		return s, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return "", fmt.Errorf("invalid duration %q, use HH:MM:SS or a value like 45m or 1h30m", s)
	}
	if d < time.Minute {
		return "", fmt.Errorf("duration must be at least one minute")
	}
	return utils.DurationFromValue(fmt.Sprint(int(d.Minutes())), utils.UnitMinutes)
}
