package interviews

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/interviewdesk/internal/cli"
)

type ListCmd struct {
	cli.ViewFlags `embed:""`
	JSON          bool `help:"Print the interviews as JSON."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	coord, err := ctx.Coordinator()
	if err != nil {
		return err
	}
	visible, err := c.Load(ctx.Context(), coord)
	if err != nil {
		return fmt.Errorf("failed to load interviews: %w", err)
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(visible)
	}

	ctx.Println(cli.Summary(coord))
	if len(visible) == 0 {
		ctx.Println("No interviews scheduled.")
		return nil
	}
	ctx.Println(cli.RenderTable(visible))
	return nil
}
