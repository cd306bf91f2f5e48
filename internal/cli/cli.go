// Package cli implements the felipe command-line interface.
//
// The root command reads a styling configuration, loads every record
// document of a source directory, and writes one DOT document per record
// into an output directory. The config subcommand prints the resolved
// configuration.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command's context.Context and handed to the pipeline
// from there.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/felipe/pkg/buildinfo"
	"github.com/matzehuels/felipe/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for commands and display.
const appName = "felipe"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var opts generateOptions

	root := &cobra.Command{
		Use:   appName,
		Short: "Felipe draws component dependency graphs as DOT documents",
		Long: `Felipe reads component and group records (JSON) from a source directory and
writes one Graphviz DOT document per record, styled by a YAML or TOML type
configuration.`,
		Version:      buildinfo.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", pipeline.DefaultConfigPath, "styling configuration file (YAML or TOML)")
	root.Flags().StringVarP(&opts.srcDir, "src-dir", "s", pipeline.DefaultSrcDir, "directory containing record documents (*.json)")
	root.Flags().StringVarP(&opts.outDir, "out-dir", "o", pipeline.DefaultOutDir, "directory to write DOT documents to")
	root.Flags().BoolVar(&opts.validate, "validate", false, "parse every document with Graphviz before writing it")

	root.AddCommand(c.configCommand(&opts.configPath))
	root.AddCommand(c.completionCommand())

	return root
}

// normalizeFlagName accepts underscores in long flag names, so --src_dir
// and --src-dir are the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
