package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/beeline/pkg/evo"
	"github.com/matzehuels/beeline/pkg/lineage"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorAmber = lipgloss.Color("214") // Honey - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorBlue  = lipgloss.Color("75")  // Light blue - commands
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAmber)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints run statistics on a single line, e.g.
// "  25100 individuals · best 1186.3 · fresh".
func printStats(individuals int, best float64, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	fmt.Println("  " +
		StyleDim.Render(fmt.Sprintf("%d individuals", individuals)) + StyleDim.Render(" · ") +
		StyleDim.Render("best ") + StyleNumber.Render(formatLength(best)) + StyleDim.Render(" · ") +
		statusStyle.Render(status))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Tables
// =============================================================================

// maxStatRows bounds the generation table; longer runs are sampled evenly,
// always keeping the first and last generation.
const maxStatRows = 12

// generationTable renders per-generation statistics.
func generationTable(stats []evo.GenerationStats) string {
	rows := make([][]string, 0, maxStatRows)
	for _, s := range sampleStats(stats, maxStatRows) {
		rows = append(rows, []string{
			strconv.Itoa(s.Generation),
			formatLength(s.MeanLength),
			formatLength(s.BestLength),
			formatRate(s.ElitismRate),
			strconv.Itoa(s.ParentCount),
		})
	}
	return newTable(rows, "Gen", "Mean", "Best", "Elitism", "Parents").Render()
}

// ancestryTable renders an ancestry grouped by depth.
func ancestryTable(src lineage.Source, a lineage.Ancestry) string {
	rows := make([][]string, 0, a.Len())
	for _, id := range a.IDs() {
		e, _ := a.Get(id)
		ind, _ := src.Get(id)
		rows = append(rows, []string{
			strconv.Itoa(e.Depth),
			strconv.FormatInt(int64(id), 10),
			strconv.Itoa(ind.Generation),
			formatLength(ind.Length),
			formatParent(e.ParentA),
			formatParent(e.ParentB),
		})
	}
	return newTable(rows, "Depth", "ID", "Gen", "Length", "Parent 1", "Parent 2").Render()
}

func newTable(rows [][]string, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		})
}

// sampleStats picks at most n entries spread evenly over stats.
func sampleStats(stats []evo.GenerationStats, n int) []evo.GenerationStats {
	if len(stats) <= n {
		return stats
	}
	out := make([]evo.GenerationStats, 0, n)
	last := len(stats) - 1
	for i := range n {
		out = append(out, stats[i*last/(n-1)])
	}
	return out
}

func formatLength(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func formatRate(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func formatParent(id lineage.ID) string {
	if !id.Valid() {
		return "-"
	}
	return strconv.FormatInt(int64(id), 10)
}
