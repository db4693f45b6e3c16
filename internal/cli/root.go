package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/interviewdesk/internal/config"
	"github.com/julianstephens/interviewdesk/internal/coordinator"
	"github.com/julianstephens/interviewdesk/internal/keyring"
	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/remote"
	"github.com/julianstephens/interviewdesk/internal/storage"
	"github.com/julianstephens/interviewdesk/internal/storage/postgres"
	"github.com/julianstephens/interviewdesk/internal/storage/sqlite"
)

type Context struct {
	Config *config.Configuration
	// Ctx bounds every request a command makes. Nil means background.
	Ctx context.Context
	// Out receives command output. Nil means stdout.
	Out io.Writer
	// Source overrides the HTTP client built from Config.
	Source remote.Source
}

func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Remote returns the backend client.
func (c *Context) Remote() (remote.Source, error) {
	if c.Source != nil {
		return c.Source, nil
	}
	client, err := remote.NewClient(c.Config.APIBaseURL, c.Config.RequestTimeout)
	if err != nil {
		return nil, err
	}
	c.Source = client
	return client, nil
}

// Coordinator returns a fresh coordinator over the backend client.
func (c *Context) Coordinator() (*coordinator.Coordinator, error) {
	src, err := c.Remote()
	if err != nil {
		return nil, err
	}
	return coordinator.New(src, coordinator.Options{WeekStart: c.Config.WeekStart}), nil
}

// resolveTarget picks the reference server's database: an explicit target,
// then the configured one, then a connection string stored in the OS keyring,
// then the sqlite file in the config directory.
func (c *Context) resolveTarget(target string) (string, bool) {
	if target == "" {
		target = c.Config.Server.Database
	}
	if target != "" {
		return target, false
	}
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return connStr, true
	case errors.Is(err, keyring.ErrNotFound):
	default:
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return c.Config.DatabasePath(), false
}

// DatabaseFile returns the sqlite file behind target, or an error when the
// server is configured for PostgreSQL.
func (c *Context) DatabaseFile(target string) (string, error) {
	resolved, _ := c.resolveTarget(target)
	if postgres.IsConnString(resolved) {
		return "", errors.New("backups are only supported for the sqlite store; use pg_dump for PostgreSQL")
	}
	return config.ExpandHome(resolved)
}

// OpenStore resolves and initializes the reference server's storage.
func (c *Context) OpenStore(target string) (storage.Provider, error) {
	target, fromKeyring := c.resolveTarget(target)

	var store storage.Provider
	if postgres.IsConnString(target) {
		if err := postgres.ValidateConnString(target); err != nil {
			// A password is acceptable when it never left the keyring.
			if !fromKeyring || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		store = postgres.New(target)
	} else {
		path, err := config.ExpandHome(target)
		if err != nil {
			return nil, err
		}
		store = sqlite.NewStore(path)
	}

	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", store.Describe(), err)
	}
	return store, nil
}
