// Package cli implements the overlayctl command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FunnySam/runelite/pkg/buildinfo"
	"github.com/FunnySam/runelite/pkg/config"
	"github.com/FunnySam/runelite/pkg/overlay"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// status receives transient progress output such as spinners.
	status io.Writer

	// Persistent flag values. Empty means "use settings file and environment".
	settingsPath string
	backend      string
	profile      string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "overlayctl",
		Short: "overlayctl inspects and edits overlay placement",
		Long: `overlayctl manages the stored placement of client overlays (preferred
location, size and anchor) and shows how a set of overlays is ordered and
layered for drawing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.settingsPath, "config", "", "settings file (default $XDG_CONFIG_HOME/overlayctl/config.toml)")
	pf.StringVar(&c.backend, "backend", "", "configuration backend: file, memory, null, redis or mongo")
	pf.StringVar(&c.profile, "profile", "", "profile ID to scope stored placement to")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// settingsFile returns the settings path from --config or the default location.
func (c *CLI) settingsFile() (string, error) {
	if c.settingsPath != "" {
		return c.settingsPath, nil
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.DefaultSettingsFile), nil
}

// loadSettings resolves settings from file, then environment, then flags.
func (c *CLI) loadSettings() (config.Settings, error) {
	path, err := c.settingsFile()
	if err != nil {
		return config.Settings{}, err
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return s, err
	}
	s.ApplyEnv()
	if c.backend != "" {
		s.Backend = c.backend
	}
	if c.profile != "" {
		s.Profile = c.profile
	}
	return s, nil
}

// openStore opens the configured backend behind a config.Manager.
// Callers close it when done.
func (c *CLI) openStore(ctx context.Context) (*config.Manager, error) {
	s, err := c.loadSettings()
	if err != nil {
		return nil, err
	}
	var sp *spinner
	if s.Backend == config.BackendRedis || s.Backend == config.BackendMongo {
		sp = startSpinner(ctx, c.status, "Connecting to "+s.Backend)
	}
	backend, err := config.Open(ctx, s)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("opened configuration backend", "backend", s.Backend, "profile", s.Profile)
	return config.NewManager(backend, c.Logger, s.Timeout), nil
}

// openRegistry opens the store and registers every overlay in the manifest.
func (c *CLI) openRegistry(ctx context.Context, manifest string) (*overlay.Manager, *config.Manager, error) {
	overlays, err := loadManifest(manifest)
	if err != nil {
		return nil, nil, err
	}
	store, err := c.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	prog := newProgress(loggerFromContext(ctx))
	reg := overlay.NewManager(store, c.Logger)
	for _, o := range overlays {
		reg.Add(o)
	}
	prog.done("Registered overlays", "count", reg.Len())
	return reg, store, nil
}
