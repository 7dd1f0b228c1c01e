package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// stdoutPath selects standard output as the render destination.
const stdoutPath = "-"

// renderFlags holds the command-line flags shared by render, layout and
// explore. Only flags the user actually set override the config file.
type renderFlags struct {
	output     string  // output file (single format) or base path
	formats    string  // comma-separated output formats
	vizType    string  // circuit or nodelink
	style      string  // simple or dark
	pngEngine  string  // native or rsvg
	layoutFile string  // re-render this saved layout instead of an expression
	scale      float64 // PNG scale factor
	center     bool    // center the tree vertically
	labels     bool    // label every gate with its sub-expression
	group      bool    // treat parenthesized products as one term
	detailed   bool    // show sub-expressions in node-link diagrams
	noCache    bool    // disable caching
	refresh    bool    // recompute even when cached
}

// addLayoutFlags registers the flags that change the computed layout.
func addLayoutFlags(cmd *cobra.Command, f *renderFlags) {
	cmd.Flags().StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: circuit, nodelink")
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, dark")
	cmd.Flags().BoolVar(&f.center, "center", false, "center the tree vertically in the frame")
	cmd.Flags().BoolVar(&f.group, "group", false, "treat parenthesized products as single terms")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show sub-expressions in node-link diagrams")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// apply copies every flag the user set onto opts.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("type") {
		opts.VizType = f.vizType
	}
	if changed("style") {
		opts.Style = f.style
	}
	if changed("png-engine") {
		opts.PNGEngine = f.pngEngine
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("center") {
		opts.Center = f.center
	}
	if changed("labels") {
		opts.Labels = f.labels
	}
	if changed("group") {
		opts.GroupProducts = f.group
	}
	opts.Detailed = f.detailed
	opts.Refresh = f.refresh
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [expression]",
		Short: "Draw an expression as a circuit diagram",
		Long: `Draw an expression as a circuit diagram.

The expression is read from the arguments, or from standard input when none
are given. Each requested format is written to <output>.<format>; with a
single format, -o names the file directly and "-o -" writes to stdout.

Formats: svg (default), png, pdf, json, yaml, dot. PDF output, and PNG output
for node-link diagrams or with --png-engine rsvg, need rsvg-convert on PATH.

A saved json or yaml layout can be rendered again without its expression:

  gatesketch render -f json -o adder "ab + c(a + b)"
  gatesketch render --layout adder.json -f png --style dark`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			f.apply(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if f.layoutFile != "" {
				if len(args) > 0 {
					return errors.New(errors.ErrCodeInvalidInput, "--layout and an expression are mutually exclusive")
				}
				return c.runRenderLayout(cmd, f, opts)
			}
			expression, err := c.readExpression(args)
			if err != nil {
				return err
			}
			opts.Expression = expression
			return c.runRender(cmd, f, opts)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, yaml, dot (comma-separated)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&f.pngEngine, "png-engine", pipeline.DefaultPNGEngine, "PNG engine: native, rsvg")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "label every gate with its sub-expression")
	cmd.Flags().StringVar(&f.layoutFile, "layout", "", "render a saved json/yaml layout instead of an expression")
	addLayoutFlags(cmd, &f)

	return cmd
}

// runRender compiles, lays out and renders one expression.
func (c *CLI) runRender(cmd *cobra.Command, f renderFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := c.spinner(ctx, cmd, f, fmt.Sprintf("Rendering %s...", vizTypeOrDefault(opts.VizType)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Stop()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		printParseError(cmd.ErrOrStderr(), opts.Expression, err)
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(cmd, result.Artifacts, opts.Formats, basePath(f.output, result.Layout.VizType))
	if err != nil {
		return err
	}
	if f.output == stdoutPath {
		return nil
	}

	printSuccess("Rendered %s", result.Compiled.NormalizedString())
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.GateCount, result.Stats.Depth, result.Stats.Columns,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// runRenderLayout renders a layout file written by an earlier run.
func (c *CLI) runRenderLayout(cmd *cobra.Command, f renderFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	layout, err := diagram.ReadLayoutFile(f.layoutFile)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "load layout %s", f.layoutFile)
	}

	// The layout decides what is drawn; only presentation flags apply.
	opts.VizType = layout.VizType
	if !cmd.Flags().Changed("style") && layout.Style != "" {
		opts.Style = layout.Style
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, nil, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", f.layoutFile, err)
	}

	output := f.output
	if output == "" {
		output = strings.TrimSuffix(f.layoutFile, filepath.Ext(f.layoutFile))
	}
	paths, err := writeArtifacts(cmd, artifacts, opts.Formats, basePath(output, layout.VizType))
	if err != nil {
		return err
	}
	if f.output == stdoutPath {
		return nil
	}

	prog.done(fmt.Sprintf("Rendered %d file(s) from %s", len(paths), f.layoutFile))
	for _, p := range paths {
		printFile(p)
	}
	if layout.Metrics != nil {
		printStats(len(layout.Nodes), layout.Metrics.Depth, layout.Metrics.Columns, cacheHit)
	}
	return nil
}

// spinner returns a progress spinner on stderr, or a silent one when the
// artifact goes to stdout.
func (c *CLI) spinner(ctx context.Context, cmd *cobra.Command, f renderFlags, msg string) *Spinner {
	if f.output == stdoutPath {
		return newSpinner(ctx, nil, msg)
	}
	return newSpinner(ctx, cmd.ErrOrStderr(), msg)
}

// basePath derives the output path prefix. An empty output falls back to
// the visualization type; a known format extension is stripped.
func basePath(output, vizType string) string {
	if output == "" {
		return vizTypeOrDefault(vizType)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func vizTypeOrDefault(vizType string) string {
	if vizType == "" {
		return pipeline.DefaultVizType
	}
	return vizType
}

// writeArtifacts writes each format to base.<format>, or the single
// artifact to stdout when base is "-". It returns the written paths.
func writeArtifacts(cmd *cobra.Command, artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if base == stdoutPath {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(formats))
		}
		_, err := cmd.OutOrStdout().Write(artifacts[formats[0]])
		return nil, err
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
