package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/internal/server"
	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/config"
	"github.com/matzehuels/tilelay/pkg/observability"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		catalog string
		project string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The catalog and cache come from --catalog or from a project file. With a
project, every wall is laid out at startup so GET /v1/walls/{wall}/layout
answers immediately; PUT replaces a wall's layout and keeps the previous
one when the new request fails. Hook counters are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, catalog, project, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&catalog, "catalog", "", "pattern catalog (JSON or TOML), overrides the project")
	cmd.Flags().StringVar(&project, "project", "", "project file (default: ./"+config.DefaultFile+" when present)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, catalog, project string, noCache bool) error {
	in := layoutInput{project: project}
	proj, err := in.loadProject()
	if err != nil {
		return err
	}

	var cacheCfg cache.Config
	if proj != nil {
		cacheCfg = proj.CacheConfig()
		if catalog == "" {
			catalog = proj.CatalogPath()
		}
	}
	if catalog == "" {
		return fmt.Errorf("no catalog: pass --catalog or use a project file")
	}

	counters := observability.NewCounters()
	counters.Register()

	runner, err := c.newRunner(ctx, catalog, cacheCfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	walls := pipeline.NewWalls(runner)
	if proj != nil {
		for _, name := range proj.WallNames() {
			opts := wallOptions(proj, name, proj.Walls[name])
			if _, err := walls.Update(ctx, opts); err != nil {
				c.Logger.Warn("initial layout failed", "wall", name, "error", err)
			}
		}
	}

	srv := server.New(runner, server.WithLogger(c.Logger), server.WithWalls(walls), server.WithCounters(counters))
	printInfo("Listening on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}
