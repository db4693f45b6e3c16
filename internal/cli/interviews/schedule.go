package interviews

import (
	"fmt"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

type ScheduleCmd struct {
	Interviewee string `arg:"" help:"Name of the person being interviewed."`
	Date        string `help:"Interview date (YYYY-MM-DD)." required:""`
	Time        string `help:"Start time (HH:MM or HH:MM:SS)." required:""`
	Duration    string `help:"Length, as HH:MM:SS or a value like 45m or 1h30m." default:"1h"`
	Role        string `help:"Role being hired for."`
	Department  string `help:"Hiring department."`
	Interviewer string `help:"Interviewer. Leave empty for unassigned."`
	Email       string `help:"Interviewee email."`
	Phone       string `help:"Interviewee phone."`
	Notes       string `help:"Additional notes."`
}

func (c *ScheduleCmd) draft() (models.Interview, error) {
	if _, err := utils.ParseDate(c.Date); err != nil {
		return models.Interview{}, err
	}
	start, err := utils.NormalizeTime(c.Time)
	if err != nil {
		return models.Interview{}, err
	}
	duration, err := cli.ParseDuration(c.Duration)
	if err != nil {
		return models.Interview{}, err
	}
	return models.Interview{
		Interviewee:     c.Interviewee,
		Date:            c.Date,
		Time:            start,
		Duration:        duration,
		Role:            c.Role,
		Department:      c.Department,
		Interviewer:     c.Interviewer,
		AdditionalNotes: c.Notes,
		Email:           c.Email,
		Phone:           c.Phone,
	}, nil
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	draft, err := c.draft()
	if err != nil {
		return err
	}
	coord, err := ctx.Coordinator()
	if err != nil {
		return err
	}
	created, err := coord.ApplyCreate(ctx.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to schedule interview: %w", err)
	}
	ctx.Printf("Scheduled %s on %s at %s (ID: %s)\n", created.Interviewee, created.Date, created.Time, created.IDString())
	return nil
}
