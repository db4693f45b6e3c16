package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/cli/interviews"
	"github.com/julianstephens/interviewdesk/internal/cli/system"
	"github.com/julianstephens/interviewdesk/internal/config"
	"github.com/julianstephens/interviewdesk/internal/constants"
	apperrors "github.com/julianstephens/interviewdesk/internal/errors"
	"github.com/julianstephens/interviewdesk/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	APIURL    string        `name:"api-url" help:"Base URL of the interview API. Overrides INTERVIEWDESK_API_URL."`
	Timeout   time.Duration `help:"Per-request timeout. Overrides INTERVIEWDESK_REQUEST_TIMEOUT."`
	WeekStart string        `help:"First day of the week for week views. Overrides INTERVIEWDESK_WEEK_START."`
	ConfigDir string        `help:"Directory for logs and the server database. Overrides INTERVIEWDESK_CONFIG_DIR."`
	Debug     bool          `help:"Enable debug logging."`

	Tui      system.TuiCmd          `cmd:"" help:"Launch the scheduling console." default:"1"`
	List     interviews.ListCmd     `cmd:"" help:"List interviews for a day, week, month or preset."`
	Schedule interviews.ScheduleCmd `cmd:"" help:"Schedule a new interview."`
	Edit     interviews.EditCmd     `cmd:"" help:"Change fields of an interview."`
	Delete   interviews.DeleteCmd   `cmd:"" help:"Delete an interview."`
	Export   interviews.ExportCmd   `cmd:"" help:"Export interviews as an iCalendar file."`
	Validate interviews.ValidateCmd `cmd:"" help:"Report double-booked interviewers and interviewees."`
	Serve    system.ServeCmd        `cmd:"" help:"Run the reference interview API."`
	Doctor   system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the server database connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable." default:"1"`
	} `cmd:"" help:"Manage the server database credentials in the OS keyring."`
	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the server's sqlite database." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List snapshots."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore a snapshot. Stop the server first."`
	} `cmd:"" help:"Manage backups of the server database."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Interview scheduling console"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(config.DefaultEnvFiles)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.APIURL != "" {
		cfg.APIBaseURL = CLI.APIURL
	}
	if CLI.Timeout > 0 {
		cfg.RequestTimeout = CLI.Timeout
	}
	if CLI.WeekStart != "" {
		cfg.WeekStartName = CLI.WeekStart
	}
	if CLI.ConfigDir != "" {
		cfg.ConfigDir = CLI.ConfigDir
	}
	cfg.Debug = cfg.Debug || CLI.Debug
	if err := cfg.Normalize(); err != nil {
		apperrors.Fatal(err)
	}

	// The console owns the terminal, so logs only go to the file.
	quiet := ctx.Selected() == nil || ctx.Selected().Name == "tui"
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir, Quiet: quiet}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Ctx:    context.Background(),
	}
	apperrors.Fatal(ctx.Run(appCtx))
}
