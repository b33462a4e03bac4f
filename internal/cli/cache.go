package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout cache",
		Long: `Manage the local layout cache.

Layouts, lattice exports and wall states are cached in a directory. It is
the project's file cache when --project names one, otherwise
$XDG_CACHE_HOME/tilelay or ~/.cache/tilelay.`,
	}
	cmd.PersistentFlags().StringVar(&project, "project", "", "project file whose file cache to use")

	cmd.AddCommand(c.cacheClearCommand(&project))
	cmd.AddCommand(c.cachePathCommand(&project))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(project *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveCacheDir(*project)
			if err != nil {
				return err
			}
			count, err := clearCache(dir)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(project *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveCacheDir(*project)
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// resolveCacheDir returns the file cache directory of the project, or the
// user cache directory.
func resolveCacheDir(project string) (string, error) {
	if project != "" {
		proj, err := config.Load(project)
		if err != nil {
			return "", err
		}
		cfg := proj.CacheConfig()
		if cfg.Backend != cache.BackendFile {
			return "", fmt.Errorf("project cache backend is %q, not a local directory", cfg.Backend)
		}
		return cfg.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}

// clearCache counts the entries under dir and empties it. A missing
// directory is an empty cache.
func clearCache(dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	return count, fc.Clear()
}
