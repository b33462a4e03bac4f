package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/config"
	pkgio "github.com/matzehuels/tilelay/pkg/io"
	"github.com/matzehuels/tilelay/pkg/pattern"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// wallsCommand creates the walls command, which lays out a whole project.
func (c *CLI) wallsCommand() *cobra.Command {
	var (
		project string
		outDir  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "walls",
		Short: "Lay out every wall of a project file",
		Long: `Lay out every wall of a project file.

All walls share one pixel scale, derived from the tallest wall, so their
layouts can be shown side by side. Each wall is written to
<out>/<wall>.layout.json. A wall whose pattern or proportion is missing from
the catalog is reported and skipped; the other walls are still laid out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if project == "" {
				project = config.DefaultFile
			}
			return c.runWalls(cmd.Context(), project, outDir, noCache)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project file (default: ./"+config.DefaultFile+")")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runWalls(ctx context.Context, path, outDir string, noCache bool) error {
	proj, err := config.Load(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, proj.CatalogPath(), proj.CacheConfig(), noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	prog := newProgress(c.Logger)
	walls := pipeline.NewWalls(runner)
	names := proj.WallNames()
	results := make(map[string]*pipeline.Result, len(names))
	failures := make(map[string]error)

	spinner := newSpinnerWithContext(ctx, "Laying out walls...")
	spinner.Start()
	for i, name := range names {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.Update(fmt.Sprintf("Laying %s (%d/%d)...", name, i+1, len(names)))

		opts := wallOptions(proj, name, proj.Walls[name])
		opts.Logger = c.Logger
		res, err := walls.Update(ctx, opts)
		if err != nil {
			failures[name] = err
			continue
		}
		results[name] = res
	}
	spinner.Stop()

	failed := len(failures)
	for _, name := range names {
		if err, ok := failures[name]; ok {
			printWarning("%s: %v", name, err)
			continue
		}
		res := results[name]
		out := filepath.Join(outDir, name+".layout.json")
		unit := proj.UnitLength
		if unit == 0 {
			unit = runner.Catalog.MinimumTileLength
		}
		params := pattern.Params{UnitLength: unit, GroutWidth: proj.Grout(proj.Walls[name]), Scale: res.Scale}
		if err := pkgio.ExportJSON(pkgio.NewDocument(name, params, res.Layout), out); err != nil {
			return fmt.Errorf("write output %s: %w", out, err)
		}
		printSuccess("%s: %s", name, res.Layout.Pattern)
		printFile(out)
		printLayoutStats(res)
	}
	prog.done(fmt.Sprintf("Laid out %d walls", len(proj.Walls)-failed))

	if failed > 0 {
		return fmt.Errorf("%d of %d walls failed", failed, len(proj.Walls))
	}
	return nil
}
