package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/cache"
	pkgio "github.com/matzehuels/tilelay/pkg/io"
	"github.com/matzehuels/tilelay/pkg/pattern"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// layoutCommand creates the layout command for computing a tile layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in     layoutInput
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay a tile pattern onto a surface",
		Long: `Lay a tile pattern onto a surface.

The surface comes from a project file wall (--project, --wall) or from
--width, --height and --hole in millimetres. The result is written as
layout.json: every tile group with its polygons, the covered area and the
per-shape tile counts, which are also printed as a table.

Results are cached locally for faster subsequent runs.`,
		Example: `  tilelay layout --catalog patterns.json -p "Running Bond" --width 3000 --height 2400
  tilelay layout --wall floor --placement Center -o floor.layout.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, catalog, cacheCfg, err := in.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, catalog, cacheCfg, in.noCache, output, quiet)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <wall>.layout.json)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the tile table")

	return cmd
}

// runLayout computes one layout and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, catalog string, cacheCfg cache.Config, noCache bool, output string, quiet bool) error {
	runner, err := c.newRunner(ctx, catalog, cacheCfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying %s...", opts.Pattern))
	spinner.Start()

	res, _, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = res.Wall + ".layout.json"
	}
	unit := opts.UnitLength
	if unit == 0 {
		unit = runner.Catalog.MinimumTileLength
	}
	params := pattern.Params{UnitLength: unit, GroutWidth: opts.GroutWidth, Scale: res.Scale}
	if err := pkgio.ExportJSON(pkgio.NewDocument(res.Wall, params, res.Layout), outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete: %s on %s", res.Layout.Pattern, res.Wall)
	printFile(outputPath)
	printLayoutStats(res)
	if !quiet {
		printNewline()
		printKeyValue("Size", describeSurface(opts.Surface))
		printArea(res.Layout.Area)
		printNewline()
		fmt.Println(renderTileTable(res.Layout.Counts))
	}
	printNewline()
	printNextStep("Inspect the anchor walk", "tilelay lattice --wall "+res.Wall+" -f svg")

	return nil
}
