package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/cache"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// latticeCommand creates the lattice command, which exports the anchor walk
// of a layout as a graph.
func (c *CLI) latticeCommand() *cobra.Command {
	var (
		in     layoutInput
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Export the anchor walk of a layout as DOT or SVG",
		Long: `Export the anchor walk of a layout as DOT or SVG.

Every visited pattern-group anchor is a node; edges point along the
translation vectors and are dashed when the neighbour was rejected because
its group lies outside the surface. Takes the same surface and pattern
flags as layout.`,
		Example: `  tilelay lattice --wall east -f svg -o east.svg
  tilelay lattice --catalog patterns.json -p Herringbone --width 1200 --height 800 -f dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			opts, catalog, cacheCfg, err := in.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLattice(cmd.Context(), opts, catalog, cacheCfg, in.noCache, format, output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <wall>.lattice.<format>)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{pipeline.FormatDOT, pipeline.FormatSVG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runLattice(ctx context.Context, opts pipeline.Options, catalog string, cacheCfg cache.Config, noCache bool, format, output string) error {
	runner, err := c.newRunner(ctx, catalog, cacheCfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Walking the lattice...")
	spinner.Start()
	data, hit, err := runner.TraceWithCacheInfo(ctx, opts, format)
	if err != nil {
		spinner.StopWithError("Lattice export failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = fmt.Sprintf("%s.lattice.%s", opts.Wall, format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Lattice exported")
	printFile(output)
	if hit {
		printDetail("from cache")
	}
	return nil
}
