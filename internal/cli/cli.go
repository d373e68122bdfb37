package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/zxdraw/internal/config"
	"github.com/matzehuels/zxdraw/pkg/buildinfo"
	"github.com/matzehuels/zxdraw/pkg/cache"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "zxdraw"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The configuration file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "zxdraw builds and draws ZX-calculus diagrams",
		Long:         `zxdraw builds ZX-calculus diagrams for common gates (Paulis, Cliffords, CX, CZ, phase gadgets) and renders them as TikZ, Graphviz, SVG, PNG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/zxdraw/config.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	cc := c.config.Cache
	if noCache {
		cc.Backend = config.BackendNone
	}
	store, err := cc.Open(cmd.Context())
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened cache", "backend", cc.Backend)

	r := pipeline.NewRunner(store, cc.Keyer(), c.Logger)
	r.TTL = cc.TTL.Duration
	return r, nil
}

// openCache opens the configured cache without a runner around it.
func (c *CLI) openCache(cmd *cobra.Command) (cache.Cache, error) {
	return c.config.Cache.Open(cmd.Context())
}
