package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "layout [expression]",
		Short: "Compute layout metrics and optionally save the layout",
		Long: `Compute layout metrics and optionally save the layout.

The layout command prints the depth, column sizes, extents and frame size of
the gate tree. With -o, the placed layout is written as JSON (or YAML for a
.yaml/.yml path) and can be drawn later with 'render --layout'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expression, err := c.readExpression(args)
			if err != nil {
				return err
			}
			opts := c.baseOptions()
			f.apply(cmd, &opts)
			opts.Expression = expression
			return c.runLayout(cmd, f, opts)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the layout to this .json or .yaml file")
	addLayoutFlags(cmd, &f)

	return cmd
}

// runLayout compiles the expression, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, f renderFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	compiled, err := pipeline.Parse(opts)
	if err != nil {
		printParseError(cmd.ErrOrStderr(), opts.Expression, err)
		return err
	}
	if err := pipeline.ValidateDepth(compiled.Tree.Depth()); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, compiled, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), metricsTable(compiled.Tree))

	if f.output == "" {
		return nil
	}
	if err := diagram.WriteLayoutFile(layout, f.output); err != nil {
		return fmt.Errorf("write output %s: %w", f.output, err)
	}

	printSuccess("Layout complete")
	printFile(f.output)
	printStats(compiled.Tree.Count(), compiled.Tree.Depth(), compiled.Tree.ColumnSizes(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render --layout "+f.output)
	return nil
}
