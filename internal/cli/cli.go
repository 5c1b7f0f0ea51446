// Package cli implements the netweave command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netweave/internal/config"
	"github.com/matzehuels/netweave/pkg/buildinfo"
	"github.com/matzehuels/netweave/pkg/cache"
	"github.com/matzehuels/netweave/pkg/errors"
	pkgio "github.com/matzehuels/netweave/pkg/io"
	"github.com/matzehuels/netweave/pkg/netlist"
	"github.com/matzehuels/netweave/pkg/reader"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "netweave builds, converts and inspects circuit netlists",
		Long: `netweave reads Spectre netlists and circuit JSON, writes them back in
Spectre or SPICE syntax, counts instances through the subcircuit hierarchy
and draws the hierarchy as a graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.registerHooks()
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+filepath.Join("$XDG_CONFIG_HOME", appName, config.ConfigFileName)+")")

	root.AddCommand(c.formatCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.modelsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

func (c *CLI) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, path, err := config.Load(ctx, config.LoadOptions{ConfigFilePath: c.configPath})
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

// newCache opens the backend selected by cfg: none when disabled, Redis
// when an address is configured, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	switch {
	case noCache || cfg.Cache.Disabled:
		return cache.NewNullCache(), nil
	case cfg.Cache.RedisAddr != "":
		c.Logger.Debug("using redis cache", "addr", cfg.Cache.RedisAddr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
	default:
		c.Logger.Debug("using file cache", "dir", cfg.Cache.Dir)
		return cache.NewFileCache(cfg.Cache.Dir)
	}
}

// newKeyer scopes cache keys to the running build.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
}

// readCircuit loads circuit JSON (*.json) or a Spectre netlist (anything
// else).
func readCircuit(path string) (*netlist.Circuit, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return pkgio.ImportCircuit(path)
	}
	return reader.Read(path)
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(cmd.ErrOrStderr(), path)
	return nil
}

// errUsage reports an invalid flag value.
func errUsage(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, format, args...)
}
