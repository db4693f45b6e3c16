package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/keyring"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// DoctorCmd checks that the console can reach its backend.
type DoctorCmd struct {
	DB bool `help:"Also check the reference server's database."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	check := func(name string, err error) {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.Printf("✓ %s: OK\n", name)
	}

	cfg := ctx.Config
	ctx.Printf("  API:        %s\n", cfg.APIBaseURL)
	ctx.Printf("  Timeout:    %s\n", cfg.RequestTimeout)
	ctx.Printf("  Week start: %s\n", cfg.WeekStart)
	ctx.Println()

	check("Backend reachable", checkBackend(ctx))

	if keyring.IsAvailable() {
		ctx.Printf("✓ OS keyring: OK\n")
	} else {
		ctx.Printf("⚠ OS keyring: WARNING\n")
		ctx.Printf("   %v\n", keyring.ErrKeyringUnavailable)
	}

	if cmd.DB {
		check("Server database", checkDatabase(ctx))
	} else {
		ctx.Printf("⊘ Server database: SKIPPED (pass --db to check)\n")
	}

	ctx.Println()
	if hasError {
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

// checkBackend runs today's day query against the API.
func checkBackend(ctx *cli.Context) error {
	src, err := ctx.Remote()
	if err != nil {
		return err
	}
	reqCtx, cancel := context.WithTimeout(ctx.Context(), 5*time.Second)
	defer cancel()
	if _, err := src.ByDate(reqCtx, utils.Today()); err != nil {
		return err
	}
	return nil
}

func checkDatabase(ctx *cli.Context) error {
	store, err := ctx.OpenStore("")
	if err != nil {
		return err
	}
	defer store.Close()

	today := utils.FormatDate(utils.Today())
	if _, err := store.ListByRange(ctx.Context(), today, today); err != nil {
		return fmt.Errorf("query failed on %s: %w", store.Describe(), err)
	}
	return nil
}
