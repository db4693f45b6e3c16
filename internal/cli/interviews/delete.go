package interviews

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/models"
)

type DeleteCmd struct {
	ID  int64 `arg:"" help:"Interview ID to delete."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete interview %d?", c.ID)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	coord, err := ctx.Coordinator()
	if err != nil {
		return err
	}
	if err := coord.ApplyDelete(ctx.Context(), models.Interview{ID: &c.ID}); err != nil {
		return fmt.Errorf("failed to delete interview %d: %w", c.ID, err)
	}
	ctx.Printf("Deleted interview %d\n", c.ID)
	return nil
}
