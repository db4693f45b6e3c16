package interviews

import (
	"fmt"
	"strings"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// EditCmd sends only the fields that were given. Empty flags leave the field
// unchanged.
type EditCmd struct {
	ID          int64  `arg:"" help:"Interview ID to edit."`
	Interviewee string `help:"New interviewee name."`
	Date        string `help:"New date (YYYY-MM-DD)."`
	Time        string `help:"New start time (HH:MM or HH:MM:SS)."`
	Duration    string `help:"New length, as HH:MM:SS or a value like 45m."`
	Role        string `help:"New role."`
	Department  string `help:"New department."`
	Interviewer string `help:"New interviewer." xor:"interviewer"`
	Unassign    bool   `help:"Clear the interviewer." xor:"interviewer"`
	Email       string `help:"New email."`
	Phone       string `help:"New phone."`
	Notes       string `help:"New notes."`
}

func (c *EditCmd) patch() (models.Patch, error) {
	p := models.Patch{}
	set := func(field, v string) {
		if v = strings.TrimSpace(v); v != "" {
			p[field] = v
		}
	}

	set("interviewee", c.Interviewee)
	if c.Date != "" {
		if _, err := utils.ParseDate(c.Date); err != nil {
			return nil, err
		}
		set("date", c.Date)
	}
	if c.Time != "" {
		t, err := utils.NormalizeTime(c.Time)
		if err != nil {
			return nil, err
		}
		set("time", t)
	}
	if c.Duration != "" {
		d, err := cli.ParseDuration(c.Duration)
		if err != nil {
			return nil, err
		}
		set("duration", d)
	}
	set("role", c.Role)
	set("department", c.Department)
	set("interviewer", c.Interviewer)
	if c.Unassign {
		if c.Interviewer != "" {
			return nil, fmt.Errorf("--interviewer and --unassign cannot be combined")
		}
		p["interviewer"] = ""
	}
	set("email", c.Email)
	set("phone", c.Phone)
	set("additional_notes", c.Notes)
	return p, nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	p, err := c.patch()
	if err != nil {
		return err
	}
	coord, err := ctx.Coordinator()
	if err != nil {
		return err
	}

	updated, outcome, err := coord.ApplyUpdate(ctx.Context(), &c.ID, p)
	if err != nil {
		return fmt.Errorf("failed to update interview %d: %w", c.ID, err)
	}
	switch outcome {
	case coordinator.OutcomeNoChanges:
		ctx.Println("Nothing to change.")
	case coordinator.OutcomeApplied:
		ctx.Printf("Updated %s (ID: %s): %s\n", updated.Interviewee, updated.IDString(), strings.Join(p.Fields(), ", "))
	}
	return nil
}
