package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "INTERVIEWDESK_"

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

// ServerOptions configures the reference backend.
type ServerOptions struct {
	Addr     string `env:"SERVER_ADDR" envDefault:"127.0.0.1:8000"`
	Database string `env:"SERVER_DB"`
	Metrics  bool   `env:"SERVER_METRICS" envDefault:"true"`
}

// Configuration is the resolved runtime configuration. Command-line flags are
// applied on top of it by the cli package.
type Configuration struct {
	APIBaseURL     string        `env:"API_URL" envDefault:"http://127.0.0.1:8000/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	WeekStartName  string        `env:"WEEK_START" envDefault:"sunday"`
	ConfigDir      string        `env:"CONFIG_DIR" envDefault:"~/.config/interviewdesk"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`

	Server ServerOptions

	WeekStart time.Weekday `env:"-"`
}

// LoadEnv loads whichever of files exist into the process environment and
// returns how many were found. Variables already set are not overridden.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return 0, fmt.Errorf("failed to load env files: %w", err)
	}
	return len(existing), nil
}

// Load reads the env files and parses the environment.
func Load(files []string) (*Configuration, error) {
	if _, err := LoadEnv(files); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse builds a Configuration from the current environment only.
func Parse() (*Configuration, error) {
	c := &Configuration{}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Normalize validates the fields and fills the derived ones. It is called
// again after flags are merged in.
func (c *Configuration) Normalize() error {
	ws, err := utils.ParseWeekday(c.WeekStartName)
	if err != nil {
		return fmt.Errorf("invalid %sWEEK_START: %w", EnvPrefix, err)
	}
	c.WeekStart = ws

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = constants.DefaultRequestTimeout
	}
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = constants.DefaultAPIBaseURL
	}

	dir, err := ExpandHome(c.ConfigDir)
	if err != nil {
		return err
	}
	c.ConfigDir = dir

	if c.Server.Addr == "" {
		c.Server.Addr = constants.DefaultServerAddr
	}
	return nil
}

// DatabasePath returns the server's database location: the configured one, or
// a sqlite file in the config directory.
func (c *Configuration) DatabasePath() string {
	if c.Server.Database != "" {
		return c.Server.Database
	}
	return filepath.Join(c.ConfigDir, constants.DefaultDBName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
