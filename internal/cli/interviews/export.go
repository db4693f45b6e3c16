package interviews

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/export"
)

type ExportCmd struct {
	cli.ViewFlags `embed:""`
	Out           string `short:"o" help:"Output file. Use - for stdout." default:"interviews.ics"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coordinator()
	if err != nil {
		return err
	}
	visible, err := c.Load(ctx.Context(), coord)
	if err != nil {
		return fmt.Errorf("failed to load interviews: %w", err)
	}
	if len(visible) == 0 {
		ctx.Println("Nothing to export: " + export.ErrEmpty.Error() + ".")
		return nil
	}

	var w io.Writer = ctx.Writer()
	if c.Out != "-" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Out, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.WriteICS(w, visible, time.Local); err != nil {
		return err
	}
	if c.Out != "-" {
		ctx.Printf("Exported %d interviews to %s\n", len(visible), c.Out)
	}
	return nil
}
