package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/buildinfo"
	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tilelay"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = ":8080"
)

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
		Use:          appName,
		Short:        "Tilelay lays tile patterns onto walls and floors",
		Long:         `Tilelay computes which tiles of a repeating pattern cover a wall or floor, which of them must be cut, and how many distinct cut shapes are needed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.wallsCommand())
	root.AddCommand(c.patternsCommand())
	root.AddCommand(c.latticeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner loads the catalog and creates a pipeline runner for CLI use.
// An empty cache config selects the file cache in the user cache directory.
func (c *CLI) newRunner(ctx context.Context, catalogPath string, cfg cache.Config, noCache bool) (*pipeline.Runner, error) {
	cat, err := pipeline.LoadCatalog(ctx, catalogPath)
	if err != nil {
		return nil, err
	}
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cat, store, cfg.Keyer(), c.Logger), nil
}

func newCache(ctx context.Context, cfg cache.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		cfg = cache.Config{Backend: cache.BackendFile, Dir: dir}
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tilelay/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
