package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gatesketch/pkg/expr"
	"github.com/matzehuels/gatesketch/pkg/gate"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1).
				MarginLeft(2)
	detailKeyStyle = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// =============================================================================
// ExploreModel - Interactive gate tree browser
// =============================================================================

// exploreRow is one gate in pre-order with its distance from the root.
type exploreRow struct {
	gate  *gate.Gate
	level int
}

// ExploreModel is the bubbletea model for browsing a compiled expression.
// The cursor walks the tree in pre-order; the panel on the right shows the
// layout metrics of the subtree under the cursor.
type ExploreModel struct {
	Compiled *expr.Compiled
	Cursor   int
	Height   int
	Offset   int

	rows []exploreRow
}

// NewExploreModel creates a browser for c.
func NewExploreModel(c *expr.Compiled) ExploreModel {
	m := ExploreModel{Compiled: c, Height: 15}
	c.Tree.Walk(func(g *gate.Gate, level int) bool {
		m.rows = append(m.rows, exploreRow{gate: g, level: level})
		return true
	})
	return m
}

// Selected returns the gate under the cursor.
func (m ExploreModel) Selected() *gate.Gate {
	return m.rows[m.Cursor].gate
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.rows) - 1)
		case "p":
			m.moveTo(m.parentOf(m.Cursor))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor on row i, clamped, and scrolls it into view.
func (m *ExploreModel) moveTo(i int) {
	m.Cursor = min(max(i, 0), len(m.rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// parentOf returns the row of i's parent: the nearest earlier row one
// level up. The root is its own parent.
func (m ExploreModel) parentOf(i int) int {
	level := m.rows[i].level
	for j := i - 1; j >= 0; j-- {
		if m.rows[j].level == level-1 {
			return j
		}
	}
	return i
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Compiled.NormalizedString()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  p parent  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		indent := strings.Repeat("  ", r.level)
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render(cursor+indent+plainLabel(r.gate)))
		} else {
			list.WriteString(cursor + indent + gateLabel(r.gate))
		}
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), m.details()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

// details renders the metrics of the selected subtree.
func (m ExploreModel) details() string {
	g := m.Selected()
	metrics := g.Metrics()
	lines := []string{
		detailKeyStyle.Render("type") + g.Type().String(),
		detailKeyStyle.Render("term") + g.Name(),
		detailKeyStyle.Render("level") + fmt.Sprint(m.rows[m.Cursor].level),
		detailKeyStyle.Render("inputs") + fmt.Sprint(g.NumInputs()),
		detailKeyStyle.Render("gates") + fmt.Sprint(g.Count()),
		detailKeyStyle.Render("depth") + fmt.Sprint(metrics.Depth),
		detailKeyStyle.Render("columns") + joinInts(metrics.Columns, " "),
		detailKeyStyle.Render("frame") + fmt.Sprintf("%dx%d", metrics.Width, metrics.Height),
	}
	return detailBoxStyle.Render(strings.Join(lines, "\n"))
}

// plainLabel is gateLabel without colors, for the highlighted row.
func plainLabel(g *gate.Gate) string {
	if g.IsLeaf() {
		return g.Name()
	}
	return g.Type().String() + " " + g.Name()
}

// =============================================================================
// Command
// =============================================================================

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:   "explore [expression]",
		Short: "Browse the gate tree of an expression interactively",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expression, err := c.readExpression(args)
			if err != nil {
				return err
			}
			opts := c.baseOptions()
			opts.Expression = expression
			if cmd.Flags().Changed("group") {
				opts.GroupProducts = group
			}

			compiled, err := pipeline.Parse(opts)
			if err != nil {
				printParseError(cmd.ErrOrStderr(), expression, err)
				return err
			}

			p := tea.NewProgram(NewExploreModel(compiled),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "treat parenthesized products as single terms")

	return cmd
}
