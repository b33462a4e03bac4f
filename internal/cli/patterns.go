package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilelay/pkg/config"
	"github.com/matzehuels/tilelay/pkg/pattern"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// patternsCommand creates the patterns command for browsing a catalog.
func (c *CLI) patternsCommand() *cobra.Command {
	var (
		catalog string
		pick    bool
	)

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the patterns of a catalog",
		Long: `List the patterns of a catalog with their proportions and tile counts.

The group size is the pattern's repeat at proportion 0 and the catalog's
minimum tile length, shown in millimetres and in pixels at the catalog scale.

With --pick, choose a pattern and proportion interactively and print the
layout command for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalog == "" {
				proj, err := config.Load(config.DefaultFile)
				if err != nil {
					return fmt.Errorf("no catalog: pass --catalog or run in a project directory: %w", err)
				}
				catalog = proj.CatalogPath()
			}
			return c.runPatterns(cmd.Context(), catalog, pick)
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "pattern catalog (JSON or TOML)")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick a pattern interactively")

	return cmd
}

func (c *CLI) runPatterns(ctx context.Context, path string, pick bool) error {
	cat, err := pipeline.LoadCatalog(ctx, path)
	if err != nil {
		return err
	}

	if !pick {
		fmt.Println(renderPatternTable(cat))
		return nil
	}

	final, err := tea.NewProgram(NewPatternListModel(cat), tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("pattern picker: %w", err)
	}
	m, ok := final.(PatternListModel)
	if !ok || m.Selected == nil {
		printInfo("No pattern selected")
		return nil
	}

	printSuccess("Selected %s", StyleHighlight.Render(m.Selected.Name))
	printNextStep("Lay it out", fmt.Sprintf("tilelay layout --catalog %s -p %q --proportion %d --width 3000 --height 2400",
		path, m.Selected.Name, m.Selected.Proportion))
	return nil
}

// renderPatternTable renders the catalog summary.
func renderPatternTable(cat *pattern.Catalog) string {
	rows := make([][]string, 0, len(cat.Patterns))
	for _, d := range cat.Patterns {
		rows = append(rows, []string{
			d.Name,
			formatProportions(d.TileProportion, -1),
			strconv.Itoa(len(d.TileVertices)),
			groupSize(cat, &d),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pattern", "Proportions", "Tiles", "Group").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue.Padding(0, 1)
			}
			return StyleDim.Padding(0, 1)
		})
	return t.Render()
}

// groupSize describes the pattern repeat at proportion 0.
func groupSize(cat *pattern.Catalog, d *pattern.Definition) string {
	r, err := d.Resolve(0)
	if err != nil {
		return "-"
	}
	px := r.Transform(pattern.Params{UnitLength: cat.MinimumTileLength, Scale: cat.Scale}).GroupSize()
	mm := px.Scale(1 / cat.Scale)
	return fmt.Sprintf("%.0f×%.0f mm (%.0f×%.0f px)", mm.X, mm.Y, px.X, px.Y)
}
