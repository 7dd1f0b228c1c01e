package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// parseCommand creates the parse command, which compiles an expression and
// prints every intermediate form.
func (c *CLI) parseCommand() *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:   "parse [expression]",
		Short: "Show the normalized, postfix and tree forms of an expression",
		Long: `Show the normalized, postfix and tree forms of an expression.

Implicit AND operators are made explicit, the result is converted to postfix
order, and the gate tree built from it is printed with inputs in
left-to-right order.`,
		Args: cobra.ArbitraryArgs,
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
			return c.runParse(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "treat parenthesized products as single terms")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, opts pipeline.Options) error {
	prog := newProgress(c.Logger)
	compiled, err := pipeline.Parse(opts)
	if err != nil {
		printParseError(cmd.ErrOrStderr(), opts.Expression, err)
		return err
	}
	prog.done("Parsed expression")

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, StyleDim.Render("normalized ")+StyleValue.Render(compiled.NormalizedString()))
	fmt.Fprintln(w, StyleDim.Render("postfix    ")+StyleValue.Render(compiled.PostfixString()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, gateTree(compiled.Tree).String())
	return nil
}
