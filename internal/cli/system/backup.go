package system

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/interviewdesk/internal/backup"
	"github.com/julianstephens/interviewdesk/internal/cli"
	"github.com/julianstephens/interviewdesk/internal/logger"
)

type BackupCreateCmd struct {
	DB string `name:"db" help:"SQLite database to back up. Defaults to the server database."`
}

func (cmd *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := ctx.DatabaseFile(cmd.DB)
	if err != nil {
		return err
	}
	created, err := backup.NewManager(path).Create(ctx.Context())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup created: %s\n", created)
	return nil
}

type BackupListCmd struct {
	DB string `name:"db" help:"SQLite database whose backups to list."`
}

func (cmd *BackupListCmd) Run(ctx *cli.Context) error {
	path, err := ctx.DatabaseFile(cmd.DB)
	if err != nil {
		return err
	}
	mgr := backup.NewManager(path)
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No backups found in %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Backups in %s (newest first):\n", mgr.Dir())
	for _, b := range backups {
		ctx.Printf("  %s  %s  %s\n", filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04:05"), humanize.Bytes(uint64(b.Size)))
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file, or its name inside the backup directory."`
	DB   string `name:"db" help:"SQLite database to restore into."`
}

func (cmd *BackupRestoreCmd) Run(ctx *cli.Context) error {
	path, err := ctx.DatabaseFile(cmd.DB)
	if err != nil {
		return err
	}
	mgr := backup.NewManager(path)

	src := cmd.Path
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) && filepath.Base(src) == src {
		src = filepath.Join(mgr.Dir(), src)
	}

	previous, err := mgr.Restore(ctx.Context(), src)
	if err != nil {
		return err
	}
	if previous != "" {
		ctx.Printf("Saved the replaced database as %s\n", filepath.Base(previous))
	}
	ctx.Printf("✓ Restored %s from %s\n", path, src)
	return nil
}

// autoBackup snapshots an existing sqlite database before the server opens
// it. Failures are logged and never stop the server.
func autoBackup(ctx *cli.Context, target string) {
	path, err := ctx.DatabaseFile(target)
	if err != nil {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	created, err := backup.NewManager(path).Create(ctx.Context())
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	ctx.Printf("Backup saved to %s\n", created)
}
