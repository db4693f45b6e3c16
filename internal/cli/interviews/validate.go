package interviews

import (
	"errors"
	"fmt"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/validation"
)

// ValidateCmd checks the selected window for double bookings. Filters narrow
// the report but every fetched interview takes part in the overlap check.
type ValidateCmd struct {
	cli.ViewFlags `embed:""`
	Strict        bool `help:"Exit with an error when conflicts are found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coordinator()
	if err != nil {
		return err
	}
	visible, err := c.Load(ctx.Context(), coord)
	if err != nil {
		return fmt.Errorf("failed to load interviews: %w", err)
	}

	ctx.Printf("Validating %d interviews (%s)...\n", len(coord.Records()), coord.Selector())
	result := validation.New().ValidateInterviews(coord.Records())
	result.Conflicts = relevant(result.Conflicts, visible)

	ctx.Println()
	ctx.Println(result.FormatReport())
	if c.Strict && result.HasConflicts() {
		return errors.New("scheduling conflicts found")
	}
	return nil
}

// relevant keeps conflicts that touch at least one visible interview.
func relevant(conflicts []validation.Conflict, visible []models.Interview) []validation.Conflict {
	shown := make(map[string]bool, len(visible))
	for _, r := range visible {
		shown[r.IDString()] = true
	}
	out := conflicts[:0]
	for _, c := range conflicts {
		for _, id := range c.IDs {
			if shown[id] {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
