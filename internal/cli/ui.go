package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorPurple = lipgloss.Color("141") // Lavender - operators
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

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleOperator = lipgloss.NewStyle().Foreground(colorPurple).Bold(true)
	styleInput    = lipgloss.NewStyle().Foreground(colorGreen)
	styleCaret    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
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

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints tree statistics on a single line.
func printStats(gates, depth int, columns []int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d gates", gates),
		fmt.Sprintf("depth %d", depth),
	}
	if len(columns) > 0 {
		parts = append(parts, "columns "+joinInts(columns, " "))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
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

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Parse Errors
// =============================================================================

// printParseError echoes the expression with a caret under the column the
// error points at. Errors without a column are left to the caller.
func printParseError(w io.Writer, expression string, err error) {
	pos := errors.Position(err)
	if !errors.IsParseError(err) || pos <= 0 {
		return
	}
	fmt.Fprintln(w, "  "+StyleValue.Render(expression))
	fmt.Fprintln(w, "  "+caretLine(expression, pos))
}

// caretLine returns padding followed by a caret under 1-based column pos.
// Tabs in the expression are kept so the caret lines up in a terminal.
func caretLine(expression string, pos int) string {
	var pad strings.Builder
	for i, r := range []rune(expression) {
		if i >= pos-1 {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return pad.String() + styleCaret.Render("^")
}

// =============================================================================
// Gate Tree & Metrics
// =============================================================================

// gateLabel renders one gate for tree views.
func gateLabel(g *gate.Gate) string {
	if g.IsLeaf() {
		return styleInput.Render(g.Name())
	}
	return styleOperator.Render(g.Type().String()) + " " + StyleDim.Render(g.Name())
}

// gateTree builds a lipgloss tree mirroring g, inputs in left-to-right order.
func gateTree(g *gate.Gate) *tree.Tree {
	t := tree.Root(gateLabel(g)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for i := range g.NumInputs() {
		in := g.Input(i)
		if in.IsLeaf() {
			t.Child(gateLabel(in))
		} else {
			t.Child(gateTree(in))
		}
	}
	return t
}

// metricsTable renders every layout query for g as a two-column table.
func metricsTable(g *gate.Gate) string {
	m := g.Metrics()
	rows := [][]string{
		{"gates", strconv.Itoa(g.Count())},
		{"depth", strconv.Itoa(m.Depth)},
		{"columns", joinInts(m.Columns, " ")},
		{"largest column", strconv.Itoa(m.LargestColumn)},
		{"seed", fmt.Sprint(m.Seed)},
		{"min y", fmt.Sprint(m.MinY)},
		{"max y", fmt.Sprint(m.MaxY)},
		{"width", fmt.Sprint(m.Width)},
		{"height", fmt.Sprint(m.Height)},
		{"centering delta", strconv.Itoa(g.CenteringDelta())},
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
	valueStyle := lipgloss.NewStyle().Foreground(colorCyan).PaddingLeft(1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return valueStyle
		}).
		Render()
}

func joinInts(xs []int, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, sep)
}
