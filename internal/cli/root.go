package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gatesketch/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent pre-run raises the log level for --verbose and loads the
// config file, so every subcommand sees the merged configuration.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Gatesketch draws boolean expressions as logic-gate circuits",
		Long: `Gatesketch compiles boolean expressions into trees of AND, OR and NOT gates
and draws them as circuit diagrams.

Expressions use + for OR, * or juxtaposition for AND, a postfix ' for NOT,
single-letter variables and parentheses:

  gatesketch render "(a + b)c'"
  echo "ab + a'b'" | gatesketch parse`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/gatesketch/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
