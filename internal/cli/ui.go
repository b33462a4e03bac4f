package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Layout Display
// =============================================================================

// printLayoutStats prints tile statistics on a single line.
func printLayoutStats(res *pipeline.Result) {
	st := res.Layout.Stats
	parts := []string{
		fmt.Sprintf("%d tiles", st.TilesDrawn),
		fmt.Sprintf("%d cut", st.TilesCut),
		fmt.Sprintf("%d shapes", res.Layout.Counts.Len()),
	}

	status := iconFresh
	statusStyle := styleComputed
	if res.CacheHit {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// printArea prints the covered and effective areas in m².
func printArea(a layout.AreaReport) {
	printKeyValue("Tiled", fmt.Sprintf("%.2f m²", layout.Round2(a.TileAreaCovered)))
	printKeyValue("Surface", fmt.Sprintf("%.2f m²", layout.Round2(a.EffectiveSurfaceArea)))
	printKeyValue("Coverage", fmt.Sprintf("%.1f %%", a.Coverage()*100))
}

// maxIDs bounds the tile IDs listed per table row.
const maxIDs = 8

// renderTileTable renders the per-shape tile counts: how many tiles of each
// shape to buy or cut, uncut shapes first.
func renderTileTable(counts *layout.TileCounts) string {
	var uncut, cut []*layout.TileCount
	for _, e := range counts.Entries() {
		if e.IsCut {
			cut = append(cut, e)
		} else {
			uncut = append(uncut, e)
		}
	}
	entries := append(uncut, cut...)

	rows := make([][]string, 0, len(entries)+1)
	for i, e := range entries {
		kind := "full"
		if e.IsCut {
			kind = "cut"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.EdgeLengths,
			kind,
			strconv.Itoa(int(e.Type)),
			strconv.Itoa(e.Count),
			formatIDs(e.IDs),
		})
	}
	rows = append(rows, []string{"", "", "", "", strconv.Itoa(counts.Total()), ""})

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Edges (mm)", "Kind", "Type", "Count", "IDs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return headerStyle.Padding(0, 1)
			case row == last:
				return base.Foreground(colorCyan).Bold(true)
			case col == 2 && rows[row][2] == "cut":
				return base.Foreground(colorYellow)
			case col == 5:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}

func formatIDs(ids []int) string {
	n := min(len(ids), maxIDs)
	parts := make([]string, n)
	for i := range n {
		parts[i] = strconv.Itoa(ids[i])
	}
	s := strings.Join(parts, ",")
	if len(ids) > maxIDs {
		s += fmt.Sprintf(",… (+%d)", len(ids)-maxIDs)
	}
	return s
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
